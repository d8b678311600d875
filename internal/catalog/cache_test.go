// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/otakurin/internal/catalog"
)

type countingClient struct {
	searches atomic.Int32
	lookups  atomic.Int32
	err      error
}

func (c *countingClient) SearchByTitle(_ context.Context, title string) ([]catalog.BasicSummary[string], error) {
	c.searches.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return []catalog.BasicSummary[string]{{RemoteID: "b1", Title: title}}, nil
}

func (c *countingClient) GetByID(_ context.Context, id string) (*catalog.Summary[string], error) {
	c.lookups.Add(1)
	return &catalog.Summary[string]{RemoteID: id}, nil
}

func TestCachedClient_SearchIsMemoizedByNormalizedTitle(t *testing.T) {
	next := &countingClient{}
	client := catalog.NewCachedClient[string](next, "book", 100, time.Minute)

	first, err := client.SearchByTitle(context.Background(), "Dune Messiah")
	require.NoError(t, err)
	second, err := client.SearchByTitle(context.Background(), "  dune   MESSIAH ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), next.searches.Load())

	_, err = client.SearchByTitle(context.Background(), "Children of Dune")
	require.NoError(t, err)
	assert.Equal(t, int32(2), next.searches.Load())
}

func TestCachedClient_ErrorsAreNotCached(t *testing.T) {
	next := &countingClient{err: errors.New("upstream 503")}
	client := catalog.NewCachedClient[string](next, "book", 100, time.Minute)

	_, err := client.SearchByTitle(context.Background(), "Dune")
	require.Error(t, err)
	_, err = client.SearchByTitle(context.Background(), "Dune")
	require.Error(t, err)

	assert.Equal(t, int32(2), next.searches.Load())
}

func TestCachedClient_GetByIDPassesThrough(t *testing.T) {
	next := &countingClient{}
	client := catalog.NewCachedClient[string](next, "book", 100, time.Minute)

	for range 3 {
		_, err := client.GetByID(context.Background(), "b1")
		require.NoError(t, err)
	}

	assert.Equal(t, int32(3), next.lookups.Load())
}
