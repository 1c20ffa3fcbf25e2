package cache

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/tidewatch/tsu/internal/calendar"
	"github.com/tidewatch/tsu/internal/models"
)

const (
	// bytes per serialized point: int64 timestamp + float64 bit pattern
	pointSize = 16

	// maxPoints guards against garbage count headers. A 3-day window at
	// 6-minute intervals is 720 points, so 10000 is generous.
	maxPoints = 10000

	fileExt = ".tide"
)

// FileStore persists prediction sets as one binary file per (station, date)
// under a single cache root directory.
//
// Layout, all little-endian: uint32 point count, then for each point an int64
// of epoch seconds followed by the uint64 bit pattern of the float64 height.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) path(stationID string, date calendar.Date) string {
	return filepath.Join(s.root, stationID+"-"+calendar.ISO(date)+fileExt)
}

// Read loads the cached prediction set for a station and date. It returns
// ErrCacheNotFound when no file exists and an InvalidCacheError when the file
// fails the count/length validation.
func (s *FileStore) Read(stationID string, date calendar.Date) (models.PredictionSet, error) {
	path := s.path(stationID, date)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCacheNotFound
		}
		return nil, fmt.Errorf("reading cache file: %w", err)
	}

	if len(data) < 4 {
		return nil, &InvalidCacheError{Path: path, Reason: "missing count header"}
	}

	count := binary.LittleEndian.Uint32(data[:4])
	if count == 0 {
		return nil, &InvalidCacheError{Path: path, Reason: "zero point count"}
	}
	if count > maxPoints {
		return nil, &InvalidCacheError{Path: path, Reason: fmt.Sprintf("point count %d exceeds ceiling", count)}
	}
	if len(data)-4 != int(count)*pointSize {
		return nil, &InvalidCacheError{
			Path:   path,
			Reason: fmt.Sprintf("length mismatch: count %d wants %d body bytes, have %d", count, int(count)*pointSize, len(data)-4),
		}
	}

	points := make(models.PredictionSet, count)
	for i := range points {
		off := 4 + i*pointSize
		points[i] = models.PredictionPoint{
			Timestamp: int64(binary.LittleEndian.Uint64(data[off : off+8])),
			Height:    math.Float64frombits(binary.LittleEndian.Uint64(data[off+8 : off+16])),
		}
	}

	return points, nil
}

// Write serializes the set to the file for the given station and date,
// creating the cache root if needed. The write is not atomic; a torn read is
// caught by Read's length check and treated as a miss.
func (s *FileStore) Write(stationID string, date calendar.Date, set models.PredictionSet) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	buf := make([]byte, 4+len(set)*pointSize)
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(set)))
	for i, p := range set {
		off := 4 + i*pointSize
		binary.LittleEndian.PutUint64(buf[off:off+8], uint64(p.Timestamp))
		binary.LittleEndian.PutUint64(buf[off+8:off+16], math.Float64bits(p.Height))
	}

	if err := os.WriteFile(s.path(stationID, date), buf, 0o644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

// Clear removes the whole cache root and recreates it empty. Deliberately
// directory-wide rather than per-file: a corrupt file may mean the on-disk
// format changed, in which case neighboring files for other dates are suspect
// too.
func (s *FileStore) Clear() error {
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("removing cache dir: %w", err)
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("recreating cache dir: %w", err)
	}
	return nil
}
