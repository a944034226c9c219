package service_test

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
	"forwardicons/internal/imagehost"
	"forwardicons/internal/metrics"
	"forwardicons/internal/service"
	"forwardicons/mocks"
)

type uploadFixture struct {
	host    *mocks.MockImageHost
	store   *mocks.MockCatalogStore
	pending *catalog.MemoryPendingStore
	metrics *metrics.Metrics
	svc     service.UploadService
}

func newUploadFixture(opts service.UploadOptions, maxPending int) *uploadFixture {
	f := &uploadFixture{
		host:    new(mocks.MockImageHost),
		store:   new(mocks.MockCatalogStore),
		pending: catalog.NewMemoryPendingStore(),
		metrics: metrics.New(prometheus.NewRegistry()),
	}
	f.host.On("Name").Return("PICGO").Maybe()

	merger := catalog.NewMerger(f.store, catalog.NewLocalLocker(), time.Second, f.metrics)
	batch := catalog.NewBatchCache(f.pending, merger, maxPending, f.metrics)
	f.svc = service.NewUploadService(f.host, merger, batch, f.metrics, opts)
	return f
}

func catalogWith(names ...string) *domain.CatalogDocument {
	doc := domain.DefaultCatalog()
	for _, n := range names {
		doc.Icons = append(doc.Icons, domain.IconRecord{Name: n, URL: "https://img/" + n + ".png"})
	}
	return doc
}

var (
	logo = domain.UploadFile{Filename: "logo.png", ContentType: "image/png", Data: []byte("png")}
	star = domain.UploadFile{Filename: "star.svg", ContentType: "image/svg+xml", Data: []byte("svg")}
)

func TestUploadService_NoFiles(t *testing.T) {
	f := newUploadFixture(service.UploadOptions{}, 0)

	_, err := f.svc.Upload(context.Background(), service.UploadInput{})

	assert.ErrorIs(t, err, domain.ErrMissingFile)
}

func TestUploadService_PreflightRejectsWithoutNetworkCall(t *testing.T) {
	f := newUploadFixture(service.UploadOptions{}, 0)
	f.host.On("Validate").Return(imagehost.Credentialf("PICUI", "token not set"))

	_, err := f.svc.Upload(context.Background(), service.UploadInput{Files: []domain.UploadFile{logo}})

	assert.ErrorIs(t, err, domain.ErrConfiguration)
	f.host.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	f.store.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestUploadService_ResolvesCollidingName(t *testing.T) {
	f := newUploadFixture(service.UploadOptions{}, 0)
	f.host.On("Validate").Return(nil)
	f.host.On("Upload", mock.Anything, logo).Return("https://img/logo.png", nil)
	f.store.On("Fetch", mock.Anything).Return(catalogWith("home"), nil)

	var written *domain.CatalogDocument
	f.store.On("Replace", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).(*domain.CatalogDocument) }).
		Return(nil)

	outcomes, err := f.svc.Upload(context.Background(), service.UploadInput{Files: []domain.UploadFile{logo}, Name: "home"})

	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.FileOutcome{OK: true, Name: "home1", URL: "https://img/logo.png"}, outcomes[0])
	require.NotNil(t, written)
	assert.Equal(t, domain.IconRecord{Name: "home1", URL: "https://img/logo.png"}, written.Icons[1])
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.UploadsTotal.WithLabelValues("PICGO", metrics.OutcomeSuccess)))
}

func TestUploadService_TwoFilesDefaultNamesIndependently(t *testing.T) {
	f := newUploadFixture(service.UploadOptions{}, 0)
	f.host.On("Validate").Return(nil)
	f.host.On("Upload", mock.Anything, logo).Return("https://img/logo.png", nil)
	f.host.On("Upload", mock.Anything, star).Return("", imagehost.NewUploadError("PICGO", imagehost.KindStatus, 502, errors.New("bad gateway")))
	f.store.On("Fetch", mock.Anything).Return(catalogWith(), nil)
	f.store.On("Replace", mock.Anything, mock.Anything).Return(nil)

	outcomes, err := f.svc.Upload(context.Background(), service.UploadInput{Files: []domain.UploadFile{logo, star}})

	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].OK)
	assert.Equal(t, "logo", outcomes[0].Name)
	assert.False(t, outcomes[1].OK)
	assert.Equal(t, "star", outcomes[1].Name)
	assert.Contains(t, outcomes[1].Error, "502")
	f.store.AssertNumberOfCalls(t, "Replace", 1)
}

func TestUploadService_MergeFailureQueuesEntry(t *testing.T) {
	f := newUploadFixture(service.UploadOptions{}, 0)
	f.host.On("Validate").Return(nil)
	f.host.On("Upload", mock.Anything, logo).Return("https://img/logo.png", nil)
	f.store.On("Fetch", mock.Anything).Return(nil, errors.New("gist unavailable"))

	outcomes, err := f.svc.Upload(context.Background(), service.UploadInput{Files: []domain.UploadFile{logo}})

	require.NoError(t, err)
	assert.Equal(t, domain.FileOutcome{OK: true, Name: "logo", URL: "https://img/logo.png", Warning: service.WarningQueued}, outcomes[0])

	pending, err := f.svc.PendingEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "logo", pending[0].Name)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.UploadsTotal.WithLabelValues("PICGO", metrics.OutcomeQueued)))
}

func TestUploadService_StrictMergeReportsFailure(t *testing.T) {
	f := newUploadFixture(service.UploadOptions{StrictMerge: true}, 0)
	f.host.On("Validate").Return(nil)
	f.host.On("Upload", mock.Anything, logo).Return("https://img/logo.png", nil)
	f.store.On("Fetch", mock.Anything).Return(nil, errors.New("gist unavailable"))

	outcomes, err := f.svc.Upload(context.Background(), service.UploadInput{Files: []domain.UploadFile{logo}})

	require.NoError(t, err)
	assert.False(t, outcomes[0].OK)
	assert.Equal(t, service.ErrorMergeFailed, outcomes[0].Error)
	assert.Equal(t, service.WarningQueued, outcomes[0].Warning)
	assert.Equal(t, "https://img/logo.png", outcomes[0].URL)

	pending, err := f.svc.PendingEntries(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestUploadService_FullQueueStillReturnsURL(t *testing.T) {
	f := newUploadFixture(service.UploadOptions{}, 1)
	_, err := f.pending.Append(context.Background(), "older", "https://img/older.png")
	require.NoError(t, err)

	f.host.On("Validate").Return(nil)
	f.host.On("Upload", mock.Anything, logo).Return("https://img/logo.png", nil)
	f.store.On("Fetch", mock.Anything).Return(nil, errors.New("gist unavailable"))

	outcomes, err := f.svc.Upload(context.Background(), service.UploadInput{Files: []domain.UploadFile{logo}})

	require.NoError(t, err)
	assert.True(t, outcomes[0].OK)
	assert.Equal(t, "https://img/logo.png", outcomes[0].URL)
	assert.Contains(t, outcomes[0].Warning, "pending batch is full")
}

func TestUploadService_FinalizeMergesQueuedEntries(t *testing.T) {
	f := newUploadFixture(service.UploadOptions{}, 0)
	ctx := context.Background()
	_, err := f.pending.Append(ctx, "home", "u1")
	require.NoError(t, err)
	_, err = f.pending.Append(ctx, "home", "u2")
	require.NoError(t, err)

	f.store.On("Fetch", mock.Anything).Return(catalogWith("home"), nil)
	f.store.On("Replace", mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.FinalizeBatch(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Merged)
	assert.Equal(t, []domain.IconRecord{{Name: "home1", URL: "u1"}, {Name: "home2", URL: "u2"}}, result.Icons)

	pending, err := f.svc.PendingEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestUploadService_FinalizeEmptyIsNoop(t *testing.T) {
	f := newUploadFixture(service.UploadOptions{}, 0)

	result, err := f.svc.FinalizeBatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Merged)
	f.store.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestUploadService_FinalizeFailureKeepsQueue(t *testing.T) {
	f := newUploadFixture(service.UploadOptions{}, 0)
	ctx := context.Background()
	_, err := f.pending.Append(ctx, "a", "u1")
	require.NoError(t, err)
	_, err = f.pending.Append(ctx, "b", "u2")
	require.NoError(t, err)

	f.store.On("Fetch", mock.Anything).Return(catalogWith(), nil)
	f.store.On("Replace", mock.Anything, mock.Anything).Return(errors.New("409 conflict"))

	_, err = f.svc.FinalizeBatch(ctx)

	assert.ErrorIs(t, err, domain.ErrMerge)
	pending, err := f.svc.PendingEntries(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "a", pending[0].Name)
	assert.Equal(t, "b", pending[1].Name)
}
