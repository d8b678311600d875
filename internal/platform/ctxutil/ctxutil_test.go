// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/otakurin/internal/platform/ctxutil"
	"github.com/taibuivan/otakurin/internal/platform/sec"
)

/*
TestContext_RequestID verifies that request IDs round-trip through the context.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-1")
	assert.Equal(t, "req-1", ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies the default fallback and an injected logger.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_AuthUser verifies that claims are absent for anonymous contexts.
*/
func TestContext_AuthUser(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	ctx = ctxutil.WithAuthUser(ctx, &sec.AuthClaims{UserID: "user-1", Username: "reader01"})
	claims := ctxutil.GetAuthUser(ctx)
	require.NotNil(t, claims)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "reader01", claims.Username)
}
