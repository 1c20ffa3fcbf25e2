package tide

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidewatch/tsu/internal/cache"
	"github.com/tidewatch/tsu/internal/calendar"
	"github.com/tidewatch/tsu/internal/models"
)

type fakeFetcher struct {
	set   models.PredictionSet
	err   error
	calls int
}

func (f *fakeFetcher) FetchWindow(_ context.Context, _ calendar.Date) (models.PredictionSet, error) {
	f.calls++
	return f.set, f.err
}

func newTestPipeline(t *testing.T, root string, fetcher Fetcher) *Pipeline {
	t.Helper()
	service, err := cache.NewService(cache.NewFileStore(root))
	require.NoError(t, err)

	p := NewPipeline("9414290", service, fetcher)
	p.Now = func() time.Time { return time.Unix(now, 0) }
	return p
}

func usableWindow() models.PredictionSet {
	return models.PredictionSet{
		{Timestamp: now - 600, Height: 1.0},
		{Timestamp: now - 300, Height: 1.5},
		{Timestamp: now + 300, Height: 2.5},
		{Timestamp: now + 600, Height: 3.0},
	}
}

func TestPipelineMissThenHit(t *testing.T) {
	root := t.TempDir()
	fetcher := &fakeFetcher{set: usableWindow()}

	first := newTestPipeline(t, root, fetcher).Run(context.Background())
	assert.Equal(t, "2.000↑", first)
	assert.Equal(t, 1, fetcher.calls)

	// A fresh pipeline over the same cache dir must serve from disk. The
	// fetcher erroring proves no network call happens.
	second := newTestPipeline(t, root, &fakeFetcher{err: errors.New("network down")}).Run(context.Background())
	assert.Equal(t, first, second)
}

func TestPipelineFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("503 from upstream")}
	got := newTestPipeline(t, t.TempDir(), fetcher).Run(context.Background())

	assert.Equal(t, Placeholder, got)
	assert.Equal(t, 1, fetcher.calls)
}

func TestPipelineUnusableFetchNotPersisted(t *testing.T) {
	root := t.TempDir()
	allPast := models.PredictionSet{
		{Timestamp: now - 600, Height: 1.0},
		{Timestamp: now - 300, Height: 2.0},
	}

	got := newTestPipeline(t, root, &fakeFetcher{set: allPast}).Run(context.Background())
	assert.Equal(t, Placeholder, got)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "an unusable set must never reach the cache")
}

func TestPipelineInvalidCacheRecovers(t *testing.T) {
	root := t.TempDir()

	// Seed a corrupt cache file for today: count header claims points that
	// never follow.
	store := cache.NewFileStore(root)
	today := calendar.FromUnix(now)
	require.NoError(t, store.Write("9414290", today, usableWindow()))
	path := filepath.Join(root, "9414290-"+calendar.ISO(today)+".tide")
	require.NoError(t, os.Truncate(path, 4))

	fetcher := &fakeFetcher{set: usableWindow()}
	got := newTestPipeline(t, root, fetcher).Run(context.Background())

	assert.Equal(t, "2.000↑", got)
	assert.Equal(t, 1, fetcher.calls, "corrupt cache must fall through to a fetch")
}

func TestPipelineUnusableCacheRefetches(t *testing.T) {
	root := t.TempDir()

	// Yesterday's leftovers: valid file, but every point is in the past.
	store := cache.NewFileStore(root)
	today := calendar.FromUnix(now)
	stale := models.PredictionSet{
		{Timestamp: now - 7200, Height: 1.0},
		{Timestamp: now - 3600, Height: 2.0},
	}
	require.NoError(t, store.Write("9414290", today, stale))

	fetcher := &fakeFetcher{set: usableWindow()}
	got := newTestPipeline(t, root, fetcher).Run(context.Background())

	assert.Equal(t, "2.000↑", got)
	assert.Equal(t, 1, fetcher.calls)
}
