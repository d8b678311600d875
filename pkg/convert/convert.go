// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides forgiving string conversions for query parameters.

A malformed value falls back to the default instead of failing the request.
Do not use it where a malformed value must be reported to the client.
*/
package convert

import "strconv"

// ToIntD parses str as an int, returning def when it is empty or malformed.
func ToIntD(str string, def int) int {
	if str == "" {
		return def
	}
	if v, err := strconv.Atoi(str); err == nil {
		return v
	}
	return def
}

// ToBool parses "true", "1", "false", "0" and friends. Anything else is false.
func ToBool(s string) bool {
	v, _ := strconv.ParseBool(s)
	return v
}
