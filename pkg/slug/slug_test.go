// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/otakurin/pkg/slug"
)

func TestFrom(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Chaos Chef", "chaos-chef"},
		{"  chaos   CHEF ", "chaos-chef"},
		{"Pokémon Emerald!", "pokemon-emerald"},
		{"The Witcher 3: Wild Hunt", "the-witcher-3-wild-hunt"},
		{"!!!", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, slug.From(tc.in), tc.in)
	}
}
