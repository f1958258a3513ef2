package task

import (
	"testing"

	"datasetforge/pkg/errutil"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func TestStoreCreateAssignsUniqueIDs(t *testing.T) {
	store := NewStore()

	a := store.Create("first")
	b := store.Create("second")

	require.NotEmpty(t, a.ID)
	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, StatusQueued, a.Status)
	require.Equal(t, "first", a.Message)
	require.False(t, a.UpdatedAt.IsZero())
}

func TestStoreUpdateLifecycle(t *testing.T) {
	store := NewStore()
	created := store.Create("queued for processing")

	processing, err := store.Update(created.ID, StatusProcessing, "Processing", nil)
	require.NoError(t, err)
	require.Equal(t, StatusProcessing, processing.Status)

	completed, err := store.Update(created.ID, StatusCompleted, "done", map[string]any{"qa_count": 10})
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, completed.Status)
	require.Equal(t, map[string]any{"qa_count": 10}, completed.Result)

	got, ok := store.Get(created.ID)
	require.True(t, ok)
	require.Equal(t, completed, got)
}

func TestStoreUpdateUnknownID(t *testing.T) {
	store := NewStore()

	_, err := store.Update("missing", StatusProcessing, "Processing", nil)
	require.Error(t, err)

	var base errutil.BaseError
	require.ErrorAs(t, err, &base)
	require.Equal(t, errutil.StatusNotFound, base.Code)
}

func TestStoreTerminalStatesAreSticky(t *testing.T) {
	store := NewStore()

	for _, terminal := range []Status{StatusCompleted, StatusFailed} {
		created := store.Create("job")
		_, err := store.Update(created.ID, terminal, "over", nil)
		require.NoError(t, err)

		_, err = store.Update(created.ID, StatusProcessing, "again", nil)
		require.Error(t, err)

		var base errutil.BaseError
		require.ErrorAs(t, err, &base)
		require.Equal(t, errutil.StatusConflict, base.Code)

		got, _ := store.Get(created.ID)
		require.Equal(t, terminal, got.Status)
		require.Equal(t, "over", got.Message)
	}
}

func TestStoreUpdateKeepsResultWhenNil(t *testing.T) {
	store := NewStore()
	created := store.Create("job")

	_, err := store.Update(created.ID, StatusProcessing, "Processing", map[string]any{"partial": true})
	require.NoError(t, err)

	got, err := store.Update(created.ID, StatusCompleted, "done", nil)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"partial": true}, got.Result)
}

func TestStatusTerminal(t *testing.T) {
	require.True(t, StatusCompleted.Terminal())
	require.True(t, StatusFailed.Terminal())
	require.False(t, StatusQueued.Terminal())
	require.False(t, StatusProcessing.Terminal())
	require.False(t, StatusNotFound.Terminal())
}
