/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeb26/pdga-ratingest/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "est.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveList(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	base := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.Save(ctx, storage.Record{
			PdgaNum:         12345,
			EstimatedAt:     base.AddDate(0, 0, i),
			CurrentRating:   860,
			EstimatedRating: 850 + i,
			Counted:         4,
		})
		require.NoError(t, err)
	}
	_, err := s.Save(ctx, storage.Record{PdgaNum: 999, CurrentRating: 1000,
		EstimatedRating: 1001, Counted: 12, Manual: 1})
	require.NoError(t, err)

	recs, err := s.List(ctx, 12345, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 852, recs[0].EstimatedRating)
	assert.Equal(t, 851, recs[1].EstimatedRating)
	assert.True(t, recs[0].EstimatedAt.Equal(base.AddDate(0, 0, 2)))
	assert.NotEqual(t, uuid.Nil, recs[0].ID)

	recs, err = s.List(ctx, 999, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 1, recs[0].Manual)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "est.sqlite")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Save(context.Background(), storage.Record{PdgaNum: 1,
		CurrentRating: 900, EstimatedRating: 905, Counted: 8})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// migrations must be a no-op the second time
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	recs, err := s.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
