package tide

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidewatch/tsu/internal/cache"
	"github.com/tidewatch/tsu/internal/calendar"
	"github.com/tidewatch/tsu/internal/models"
)

// Fetcher is the prediction source the pipeline falls back to on a cache
// miss. Satisfied by *noaa.Source.
type Fetcher interface {
	FetchWindow(ctx context.Context, center calendar.Date) (models.PredictionSet, error)
}

// Pipeline turns one invocation into one status string: try the cache,
// validate, fall back to a fetch, persist, estimate. Every fallible branch
// resolves to either a real status or the placeholder; nothing errors past
// this boundary.
type Pipeline struct {
	StationID string
	Cache     *cache.Service
	Source    Fetcher

	// Now is the clock, injectable for tests. Defaults to time.Now.
	Now func() time.Time
}

func NewPipeline(stationID string, cacheService *cache.Service, source Fetcher) *Pipeline {
	return &Pipeline{
		StationID: stationID,
		Cache:     cacheService,
		Source:    source,
		Now:       time.Now,
	}
}

// Run produces the status string for "now".
func (p *Pipeline) Run(ctx context.Context) string {
	now := p.Now().Unix()
	today := calendar.FromUnix(now)

	if set, err := p.Cache.Get(p.StationID, today); err == nil && set.Usable(now) {
		log.Debug().Str("station", p.StationID).Msg("Cache HIT with usable predictions")
		return Status(set, now)
	} else if err != nil && !errors.Is(err, cache.ErrCacheNotFound) {
		log.Debug().Err(err).Msg("Cache read failed")
	}

	// Miss, invalid, or unusable: wipe the whole cache dir before refetching
	// so stale-format leftovers cannot resurface on a later day.
	if err := p.Cache.Clear(); err != nil {
		log.Warn().Err(err).Msg("Clearing cache failed")
	}

	set, err := p.Source.FetchWindow(ctx, today)
	if err != nil {
		log.Warn().Err(err).Str("station", p.StationID).Msg("Fetching predictions failed")
		return Placeholder
	}

	if !set.Usable(now) {
		log.Warn().Int("points", len(set)).Msg("Fetched predictions do not bracket now")
		if err := p.Cache.Clear(); err != nil {
			log.Warn().Err(err).Msg("Clearing cache failed")
		}
		return Placeholder
	}

	// Serving a correct answer this run beats caching it for the next one.
	if err := p.Cache.Save(p.StationID, today, set); err != nil {
		log.Warn().Err(err).Msg("Persisting predictions failed")
	}

	return Status(set, now)
}
