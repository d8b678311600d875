// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slice holds the generic slice helpers the catalog decoders lean on.
package slice

// Map applies transform to every element. A nil input yields an empty, non-nil slice.
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, 0, len(input))
	for _, item := range input {
		result = append(result, transform(item))
	}
	return result
}

// Filter keeps the elements for which keep returns true.
func Filter[T any](input []T, keep func(T) bool) []T {
	result := make([]T, 0, len(input))
	for _, item := range input {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}

// NonEmpty drops empty strings.
func NonEmpty(input []string) []string {
	return Filter(input, func(s string) bool { return s != "" })
}
