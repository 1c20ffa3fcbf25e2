package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
	"github.com/tidewatch/tsu/internal/calendar"
	"github.com/tidewatch/tsu/internal/models"
)

const defaultLRUSize = 64

// Service layers an in-process LRU in front of the file store, so repeated
// lookups for the same station/day within one process skip the disk entirely.
type Service struct {
	lru       *lru.Cache[string, models.PredictionSet]
	fileStore *FileStore

	lruHits    uint64
	lruMisses  uint64
	fileHits   uint64
	fileMisses uint64
}

func NewService(fileStore *FileStore) (*Service, error) {
	lruCache, err := lru.New[string, models.PredictionSet](defaultLRUSize)
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}

	return &Service{
		lru:       lruCache,
		fileStore: fileStore,
	}, nil
}

func cacheKey(stationID string, date calendar.Date) string {
	return stationID + ":" + calendar.ISO(date)
}

// Get tries the LRU first, then the file store, promoting file hits into the
// LRU. File store errors (not found, invalid) pass through to the caller.
func (s *Service) Get(stationID string, date calendar.Date) (models.PredictionSet, error) {
	key := cacheKey(stationID, date)

	if set, ok := s.lru.Get(key); ok {
		s.lruHits++
		return set, nil
	}
	s.lruMisses++

	set, err := s.fileStore.Read(stationID, date)
	if err != nil {
		s.fileMisses++
		return nil, err
	}
	s.fileHits++

	s.lru.Add(key, set)
	return set, nil
}

// Save writes through to both layers.
func (s *Service) Save(stationID string, date calendar.Date, set models.PredictionSet) error {
	s.lru.Add(cacheKey(stationID, date), set)

	if err := s.fileStore.Write(stationID, date, set); err != nil {
		return fmt.Errorf("saving predictions to file store: %w", err)
	}
	return nil
}

// Clear purges the LRU and wipes the on-disk cache root.
func (s *Service) Clear() error {
	s.lru.Purge()
	return s.fileStore.Clear()
}

// LogStats emits hit/miss counters at debug level.
func (s *Service) LogStats() {
	log.Debug().
		Uint64("lru_hits", s.lruHits).
		Uint64("lru_misses", s.lruMisses).
		Uint64("file_hits", s.fileHits).
		Uint64("file_misses", s.fileMisses).
		Msg("Cache stats")
}
