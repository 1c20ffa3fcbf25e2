package models

// PredictionPoint is a single tide prediction: a UTC timestamp in epoch
// seconds and a predicted water height. A zero timestamp is the sentinel for
// an unparseable or missing reading and never represents a real
// midnight-epoch observation.
type PredictionPoint struct {
	Timestamp int64   `json:"timestamp"`
	Height    float64 `json:"height"`
}

func (p PredictionPoint) GetTimestamp() int64 {
	return p.Timestamp
}

// PredictionSet is a sequence of prediction points ordered by non-decreasing
// timestamp. Callers rely on the ordering to find the points bracketing "now"
// in a single forward scan.
type PredictionSet []PredictionPoint

// Usable reports whether the set actually brackets the given instant: it must
// contain at least one point at or before now and at least one strictly after
// it, with no zero-timestamp sentinels anywhere. Anything else would make
// interpolation silently wrong, so unusable sets trigger a re-fetch instead.
func (s PredictionSet) Usable(now int64) bool {
	var hasBefore, hasAfter bool
	for _, p := range s {
		if p.Timestamp == 0 {
			return false
		}
		if p.Timestamp <= now {
			hasBefore = true
		} else {
			hasAfter = true
		}
	}
	return hasBefore && hasAfter
}
