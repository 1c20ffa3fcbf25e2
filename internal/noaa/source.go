package noaa

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/tidewatch/tsu/internal/calendar"
	"github.com/tidewatch/tsu/internal/models"
	"github.com/tidewatch/tsu/pkg/http/client"
)

// rawPrediction is one time/value pair as the datagetter API returns it.
// Both fields arrive as strings.
type rawPrediction struct {
	Time   string `json:"t"`
	Height string `json:"v"`
}

type rawResponse struct {
	Predictions []rawPrediction `json:"predictions"`
}

// Source fetches tide predictions for a single station from the NOAA
// Tides & Currents datagetter API.
type Source struct {
	httpClient client.Interface
	stationID  string
}

func NewSource(httpClient client.Interface, stationID string) *Source {
	return &Source{
		httpClient: httpClient,
		stationID:  stationID,
	}
}

// FetchWindow fetches a three-day prediction window centered on the given
// date and returns the points sorted by timestamp ascending. It never touches
// the cache.
func (s *Source) FetchWindow(ctx context.Context, center calendar.Date) (models.PredictionSet, error) {
	begin, err := calendar.AddDays(center, -1)
	if err != nil {
		return nil, &FetchError{Message: "computing window start", Err: err}
	}
	end, err := calendar.AddDays(center, 1)
	if err != nil {
		return nil, &FetchError{Message: "computing window end", Err: err}
	}

	path := fmt.Sprintf("/api/prod/datagetter"+
		"?station=%s&begin_date=%s&end_date=%s&product=predictions&datum=MLLW"+
		"&units=english&time_zone=gmt&format=json&interval=6",
		s.stationID, calendar.Compact(begin), calendar.Compact(end))

	resp, err := s.httpClient.Get(ctx, path)
	if err != nil {
		return nil, &FetchError{Message: "fetching predictions", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	log.Debug().
		Str("station", s.stationID).
		Str("begin_date", calendar.Compact(begin)).
		Str("end_date", calendar.Compact(end)).
		Msg("Fetched predictions from noaa")

	var noaaResp rawResponse
	if err := json.Unmarshal(resp.Body, &noaaResp); err != nil {
		return nil, &ParseError{Message: "decoding response", Err: err}
	}

	points := make(models.PredictionSet, 0, len(noaaResp.Predictions))
	for _, p := range noaaResp.Predictions {
		timestamp, err := calendar.ParseTimestamp(p.Time)
		if err != nil {
			// A bad time field invalidates only this point.
			log.Debug().Str("time", p.Time).Msg("Dropping prediction with unparseable time")
			continue
		}

		height, err := strconv.ParseFloat(p.Height, 64)
		if err != nil {
			height = 0.0
		}

		points = append(points, models.PredictionPoint{
			Timestamp: timestamp,
			Height:    height,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp < points[j].Timestamp
	})

	return points, nil
}
