// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Tree(t *testing.T) {
	root := newRootCommand()

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())
	assert.NotNil(t, root.RunE, "bare invocation serves")

	down, _, err := root.Find([]string{"migrate", "down"})
	require.NoError(t, err)
	assert.Equal(t, "down", down.Name())

	steps := down.Flags().Lookup("steps")
	require.NotNil(t, steps)
	assert.Equal(t, "1", steps.DefValue)
	assert.Equal(t, "n", steps.Shorthand)
}

func TestRootCommand_MigrateWithoutDatabaseFails(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))

	root := newRootCommand()
	root.SetArgs([]string{"migrate", "up"})
	assert.Error(t, root.Execute())
}
