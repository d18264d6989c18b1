package merge

import (
	"math"
)

// Candidate is one tracking value tried at a seam with the width error it
// produced (positive: too wide).
type Candidate struct {
	Tracking float64
	Delta    float64
}

// SearchResult is the outcome of a tracking search.
type SearchResult struct {
	Best   Candidate
	Probes int
	Exact  bool
}

// bisectTracking searches [lo, hi] for the tracking that zeroes the width
// error reported by probe. Width grows with tracking, so a positive error
// moves the upper bound down and a negative one moves the lower bound up.
// Tracking values are whole thousandths of an em. The search stops once the
// range is narrower than resolution or an exact match was probed, and keeps
// the candidate with the smallest absolute error.
//
// With the default range and resolution there are at most 13 probes.
func bisectTracking(lo, hi, resolution, exact float64, probe func(tracking float64) (float64, error)) (SearchResult, error) {
	res := SearchResult{Best: Candidate{Delta: math.Inf(1)}}
	for {
		mid := (lo + hi) / 2
		tracking := math.Round(mid)
		delta, err := probe(tracking)
		if err != nil {
			return res, err
		}
		res.Probes++

		if math.Abs(delta) < math.Abs(res.Best.Delta) {
			res.Best = Candidate{Tracking: tracking, Delta: delta}
		}
		if delta == 0 {
			break
		}
		if delta > 0 {
			hi = mid
		} else {
			lo = mid
		}
		if hi-lo <= resolution {
			break
		}
	}
	res.Exact = math.Abs(res.Best.Delta) <= exact
	return res, nil
}
