package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorksheet(problems ...string) *Worksheet {
	return &Worksheet{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Params: WorksheetParams{
			Min:           1,
			Max:           20,
			Count:         len(problems),
			Operations:    []string{"add"},
			NumOperations: 1,
		},
		Problems: problems,
		Model:    "mock",
	}
}

func TestSaveAndGetWorksheet(t *testing.T) {
	s := openTestStore(t)
	repo := s.WorksheetRepo()
	ctx := context.Background()

	ws := newWorksheet("1 + 2 = ", "3 + 4 = ", "5 + 6 = ")
	require.NoError(t, repo.SaveWorksheet(ctx, ws))
	assert.NotZero(t, ws.Sequence)

	got, err := repo.GetWorksheet(ctx, ws.ID)
	require.NoError(t, err)
	assert.Equal(t, ws.Problems, got.Problems)
	assert.Equal(t, ws.Params, got.Params)
	assert.Equal(t, "mock", got.Model)
	assert.WithinDuration(t, ws.CreatedAt, got.CreatedAt, time.Millisecond)
}

func TestSaveWorksheetRequiresID(t *testing.T) {
	s := openTestStore(t)
	err := s.WorksheetRepo().SaveWorksheet(context.Background(), &Worksheet{Problems: []string{"1 + 1 = "}})
	require.Error(t, err)
}

func TestGetWorksheetNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.WorksheetRepo().GetWorksheet(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListWorksheetsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.WorksheetRepo()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		ws := newWorksheet(fmt.Sprintf("%d + 1 = ", i))
		require.NoError(t, repo.SaveWorksheet(ctx, ws))
		ids = append(ids, ws.ID)
	}

	list, err := repo.ListWorksheets(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[0], list[2].ID)

	limited, err := repo.ListWorksheets(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, ids[2], limited[0].ID)
}

func TestPruneWorksheets(t *testing.T) {
	s := openTestStore(t)
	repo := s.WorksheetRepo()
	ctx := context.Background()

	var newest string
	for i := 0; i < 7; i++ {
		ws := newWorksheet("1 + 1 = ")
		require.NoError(t, repo.SaveWorksheet(ctx, ws))
		newest = ws.ID
	}

	removed, err := repo.PruneWorksheets(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	list, err := repo.ListWorksheets(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, list, 5)
	assert.Equal(t, newest, list[0].ID)

	// Fewer than keep is a no-op.
	removed, err = repo.PruneWorksheets(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestWorksheetsShareSequenceWithEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Model: "mock"}))
	ws := newWorksheet("2 + 2 = ")
	require.NoError(t, s.WorksheetRepo().SaveWorksheet(ctx, ws))

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Greater(t, ws.Sequence, events[0].Sequence)
}
