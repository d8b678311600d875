// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package multivalue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/otakurin/pkg/multivalue"
)

/*
TestRoundTrip verifies split(join(list)) == list for non-empty lists.
*/
func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		values []string
	}{
		{"single", []string{"PS5"}},
		{"several", []string{"PC", "PS5", "Switch"}},
		{"spaces_kept", []string{"Nintendo Switch", "Xbox Series X|S"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.values, multivalue.Split(multivalue.Join(tt.values)))
		})
	}
}

/*
TestEmpty verifies that the empty list and the empty string map onto each other.
*/
func TestEmpty(t *testing.T) {
	assert.Equal(t, "", multivalue.Join(nil))
	assert.Equal(t, "", multivalue.Join([]string{}))

	split := multivalue.Split("")
	assert.NotNil(t, split)
	assert.Empty(t, split)
	assert.NotEqual(t, []string{""}, split)
}

/*
TestClean verifies that dirty catalog values are made round-trip safe.
*/
func TestClean(t *testing.T) {
	cleaned := multivalue.Clean([]string{" PC ", "", "Sony; Inc", "  "})

	assert.Equal(t, []string{"PC", "Sony, Inc"}, cleaned)
	assert.Equal(t, cleaned, multivalue.Split(multivalue.Join(cleaned)))
}
