// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug folds free-form titles into a stable ASCII key.
//
// "Pokémon  Emerald!" and "pokemon emerald" both become "pokemon-emerald",
// which is what the search cache keys on.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// From lowercases s, strips accents and joins the remaining letter and digit
// runs with single hyphens.
func From(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, transform.RemoveFunc(isMn)), s)
	if err != nil {
		folded = s
	}

	words := strings.FieldsFunc(strings.ToLower(folded), func(r rune) bool {
		return !(isASCIIAlnum(r) || (r > unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))))
	})

	return strings.Join(words, "-")
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// isMn reports whether r is a nonspacing mark (accent).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
