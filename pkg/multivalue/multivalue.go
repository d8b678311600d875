// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package multivalue converts between list fields and the single delimited
column they are stored in.

An empty list joins to "" and "" splits to an empty list, never [""].
Values must not contain the separator themselves.
*/
package multivalue

import "strings"

// Separator joins list values into one stored string.
const Separator = ";"

// Join concatenates values with [Separator].
func Join(values []string) string {
	return strings.Join(values, Separator)
}

// Split is the inverse of [Join].
func Split(stored string) []string {
	if stored == "" {
		return []string{}
	}
	return strings.Split(stored, Separator)
}

// Clean drops empty entries and strips the separator from each value, so the
// result survives a Join/Split round trip unchanged.
func Clean(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(strings.ReplaceAll(value, Separator, ","))
		if value != "" {
			cleaned = append(cleaned, value)
		}
	}
	return cleaned
}
