package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"forwardicons/internal/catalog"
	"forwardicons/internal/domain"
	"forwardicons/internal/metrics"
	"forwardicons/mocks"
)

func newBatch(store *fakeStore, pending *catalog.MemoryPendingStore, max int) *catalog.BatchCache {
	merger := catalog.NewMerger(store, catalog.NewLocalLocker(), time.Second, nil)
	return catalog.NewBatchCache(pending, merger, max, nil)
}

func TestBatchCache_EmptyDrainIsNoop(t *testing.T) {
	store := newFakeStore("a")
	b := newBatch(store, catalog.NewMemoryPendingStore(), 0)

	result, err := b.DrainAndMerge(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Merged)
	assert.Empty(t, result.Icons)
	assert.Equal(t, 0, store.fetches)
	assert.Equal(t, 0, store.replaces)
}

func TestBatchCache_DrainMergesInOrder(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore("home")
	pending := catalog.NewMemoryPendingStore()
	b := newBatch(store, pending, 0)

	require.NoError(t, b.Append(ctx, "home", "u1"))
	require.NoError(t, b.Append(ctx, "home", "u2"))

	result, err := b.DrainAndMerge(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Merged)
	assert.Equal(t, []domain.IconRecord{{Name: "home1", URL: "u1"}, {Name: "home2", URL: "u2"}}, result.Icons)
	assert.Equal(t, []string{"home", "home1", "home2"}, store.names())

	left, err := b.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestBatchCache_FailedReplaceKeepsQueue(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.replaceErr = errors.New("gist 500")
	pending := catalog.NewMemoryPendingStore()
	b := newBatch(store, pending, 0)

	require.NoError(t, b.Append(ctx, "b", "u1"))
	require.NoError(t, b.Append(ctx, "a", "u2"))
	before, _ := b.Pending(ctx)

	_, err := b.DrainAndMerge(ctx)

	assert.ErrorIs(t, err, domain.ErrMerge)
	after, _ := b.Pending(ctx)
	assert.Equal(t, before, after)
}

func TestBatchCache_AppendPastCapacity(t *testing.T) {
	ctx := context.Background()
	b := newBatch(newFakeStore(), catalog.NewMemoryPendingStore(), 2)

	require.NoError(t, b.Append(ctx, "a", "u"))
	require.NoError(t, b.Append(ctx, "b", "u"))
	err := b.Append(ctx, "c", "u")

	assert.ErrorIs(t, err, catalog.ErrBatchFull)
}

func TestBatchCache_OnlySnapshottedEntriesRemoved(t *testing.T) {
	ctx := context.Background()
	pending := new(mocks.MockPendingStore)
	pending.On("List", mock.Anything).Return([]domain.PendingEntry{{ID: 1, Name: "a", URL: "u1"}, {ID: 2, Name: "b", URL: "u2"}}, nil).Once()
	pending.On("Remove", mock.Anything, []int64{1, 2}).Return(nil).Once()
	pending.On("Count", mock.Anything).Return(1, nil).Once()

	reg := metrics.New(prometheus.NewRegistry())
	merger := catalog.NewMerger(newFakeStore(), catalog.NewLocalLocker(), time.Second, reg)
	b := catalog.NewBatchCache(pending, merger, 10, reg)

	result, err := b.DrainAndMerge(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Merged)
	pending.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.BatchPending))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.CatalogMerges.WithLabelValues(catalog.PathFinalize, metrics.OutcomeSuccess)))
}

func TestBatchCache_RemoveFailureStillReportsMerge(t *testing.T) {
	ctx := context.Background()
	pending := new(mocks.MockPendingStore)
	pending.On("List", mock.Anything).Return([]domain.PendingEntry{{ID: 7, Name: "a", URL: "u"}}, nil)
	pending.On("Remove", mock.Anything, []int64{7}).Return(errors.New("db gone"))
	pending.On("Count", mock.Anything).Return(0, errors.New("db gone"))

	merger := catalog.NewMerger(newFakeStore(), catalog.NewLocalLocker(), time.Second, nil)
	b := catalog.NewBatchCache(pending, merger, 10, nil)

	result, err := b.DrainAndMerge(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Merged)
}

func TestMemoryPendingStore_RemoveKeepsOthers(t *testing.T) {
	ctx := context.Background()
	s := catalog.NewMemoryPendingStore()
	e1, _ := s.Append(ctx, "a", "u1")
	e2, _ := s.Append(ctx, "b", "u2")
	e3, _ := s.Append(ctx, "c", "u3")
	assert.Less(t, e1.ID, e2.ID)

	require.NoError(t, s.Remove(ctx, []int64{e1.ID, e3.ID}))

	left, _ := s.List(ctx)
	require.Len(t, left, 1)
	assert.Equal(t, "b", left[0].Name)
	n, _ := s.Count(ctx)
	assert.Equal(t, 1, n)
}
