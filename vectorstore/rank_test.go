package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankResults_OrdersByDescendingScore(t *testing.T) {
	results := []Result{
		{ID: "b", Score: 0.42, Text: "second"},
		{ID: "c", Score: 0.11, Text: "third"},
		{ID: "a", Score: 0.93, Text: "first"},
	}

	ranked := rankResults(results, 3)

	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{ranked[0].ID, ranked[1].ID, ranked[2].ID})
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRankResults_TruncatesToTopK(t *testing.T) {
	results := []Result{
		{ID: "a", Score: 0.9},
		{ID: "b", Score: 0.8},
		{ID: "c", Score: 0.7},
		{ID: "d", Score: 0.6},
	}

	ranked := rankResults(results, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, "b", ranked[1].ID)
}

func TestRankResults_DropsDuplicateIds(t *testing.T) {
	results := []Result{
		{ID: "a", Score: 0.9, Text: "kept"},
		{ID: "a", Score: 0.5, Text: "dropped"},
		{ID: "b", Score: 0.8},
	}

	ranked := rankResults(results, 3)

	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, "kept", ranked[0].Text)
}

func TestRankResults_Empty(t *testing.T) {
	assert.Empty(t, rankResults(nil, 3))
}
