/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pdga

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// PDGA rating estimator based on the published heuristics:
//   1. https://www.pdga.com/faq/ratings/when-updated
//   2. https://www.pdga.com/faq/ratings/how-calculated
//
// Rounds more than 100 points below the player's average round, or more than
// 2.5 standard deviations below the current rating, are dropped. Only rounds
// within 12 months of the next update count, and the most recent 25% of the
// counted rounds are double weighted. PDGA's actual calculation is not public
// so this is only an estimate.

// ExclusionReason says why a round does not count.
type ExclusionReason int

const (
	ReasonNone ExclusionReason = iota
	ReasonBelowMean
	ReasonBelowStdDev
	ReasonTooOld
)

func (r ExclusionReason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonBelowMean:
		return "outlier(avg)"
	case ReasonBelowStdDev:
		return "outlier(stdev)"
	case ReasonTooOld:
		return "too old"
	default:
		return "?"
	}
}

// ExclusionRule holds the outlier thresholds.
type ExclusionRule struct {
	// rounds at or below mean-MeanMargin are dropped
	MeanMargin float64
	// rounds at or below current-StdDevFactor*stdev are dropped
	StdDevFactor float64
}

// DefaultExclusionRule is PDGA's documented outlier rule.
var DefaultExclusionRule = ExclusionRule{MeanMargin: 100, StdDevFactor: 2.5}

// Check returns the reason the rating is an outlier, or ReasonNone.
func (x ExclusionRule) Check(rating int, mean float64, stdDev float64,
	currentRating int) ExclusionReason {

	r := float64(rating)
	if r <= mean-x.MeanMargin {
		return ReasonBelowMean
	}
	if r <= float64(currentRating)-x.StdDevFactor*stdDev {
		return ReasonBelowStdDev
	}
	return ReasonNone
}

// CutoffRule returns the date a round must be strictly after in order to
// count, given the current time.
type CutoffRule func(now time.Time) time.Time

// RecencyRule selects which end of the date-ascending counted rounds gets
// double weight.
type RecencyRule int

const (
	// RecencyNewest doubles the most recent quarter of counted rounds.
	RecencyNewest RecencyRule = iota
	// RecencyOldest doubles the oldest quarter. Earlier versions of this
	// estimator did this; it is kept for comparison only.
	RecencyOldest
)

func (r RecencyRule) String() string {
	if r == RecencyOldest {
		return "oldest"
	}
	return "newest"
}

// recentCount is the number of double-weighted rounds out of n.
func recentCount(n int) int {
	return n / 4
}

// Doubled reports whether position i (0 is oldest) of n date-ascending
// counted rounds is double weighted.
func (r RecencyRule) Doubled(i int, n int) bool {
	k := recentCount(n)
	if r == RecencyOldest {
		return i < k
	}
	return i >= n-k
}

// Estimator computes the estimated next rating from a set of rounds.
// An Estimator holds no mutable state and is safe for concurrent use.
type Estimator struct {
	Exclusion ExclusionRule
	Cutoff    CutoffRule
	Recency   RecencyRule
	Now       func() time.Time
}

// DefaultEstimator returns an Estimator using PDGA's documented rules.
func DefaultEstimator() *Estimator {
	return &Estimator{
		Exclusion: DefaultExclusionRule,
		Cutoff:    EligibilityCutoff,
		Recency:   RecencyNewest,
		Now:       time.Now,
	}
}

// RatedRound is a Round annotated with the estimator's decision.
type RatedRound struct {
	Round
	WillCount bool
	// 0 when not counted, 2 when double weighted
	Weight int
	Reason ExclusionReason
}

// EstimateResult holds the estimated rating and how it was reached.
type EstimateResult struct {
	Rating int
	// every input round, oldest first
	Rounds  []RatedRound
	Mean    float64
	StdDev  float64
	Cutoff  time.Time
	Counted int
	Doubled int
}

// Estimate computes the estimated rating using DefaultEstimator().
func Estimate(rounds []Round, currentRating int) (*EstimateResult, error) {
	return DefaultEstimator().Estimate(rounds, currentRating)
}

// Estimate computes the next rating for a player whose current rating is
// currentRating. rounds is not modified.
//
// ErrEmptyInput is returned if rounds is empty or if no round counts. In the
// latter case the annotated result is returned alongside the error, with a
// Rating of 0. A negative rating or missing date rejects the whole set with a
// *MalformedRecordError. A zero Exclusion means DefaultExclusionRule.
func (e *Estimator) Estimate(rounds []Round,
	currentRating int) (*EstimateResult, error) {

	if len(rounds) == 0 {
		return nil, fmt.Errorf("estimate: %w", ErrEmptyInput)
	}
	if err := validateRounds(rounds); err != nil {
		return nil, err
	}

	ratings := make([]int, len(rounds))
	for i, r := range rounds {
		ratings[i] = r.Rating
	}
	mean, stdDev := meanStdDev(ratings)

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	cutoffRule := e.Cutoff
	if cutoffRule == nil {
		cutoffRule = EligibilityCutoff
	}
	cutoff := truncateDay(cutoffRule(now()))

	exclusion := e.Exclusion
	if exclusion == (ExclusionRule{}) {
		exclusion = DefaultExclusionRule
	}

	res := &EstimateResult{
		Rounds: make([]RatedRound, len(rounds)),
		Mean:   mean,
		StdDev: stdDev,
		Cutoff: cutoff,
	}
	for i, r := range rounds {
		rr := RatedRound{Round: r}
		rr.Reason = exclusion.Check(r.Rating, mean, stdDev, currentRating)
		if rr.Reason == ReasonNone && !truncateDay(r.Date).After(cutoff) {
			rr.Reason = ReasonTooOld
		}
		rr.WillCount = rr.Reason == ReasonNone
		res.Rounds[i] = rr
	}

	// weighting depends on position in date order
	sort.SliceStable(res.Rounds, func(i, j int) bool {
		return res.Rounds[i].Date.Before(res.Rounds[j].Date)
	})

	for _, rr := range res.Rounds {
		if rr.WillCount {
			res.Counted++
		}
	}
	if res.Counted == 0 {
		// the annotated rounds still explain why nothing counted
		return res, fmt.Errorf("estimate: none of %v rounds count: %w",
			len(rounds), ErrEmptyInput)
	}

	sum := 0
	pos := 0
	for i := range res.Rounds {
		rr := &res.Rounds[i]
		if !rr.WillCount {
			continue
		}
		rr.Weight = 1
		if e.Recency.Doubled(pos, res.Counted) {
			rr.Weight = 2
			res.Doubled++
		}
		sum += rr.Rating * rr.Weight
		pos++
	}

	res.Rating = sum / (res.Counted + res.Doubled)
	return res, nil
}

func validateRounds(rounds []Round) error {
	for i, r := range rounds {
		if r.Rating < 0 {
			return &MalformedRecordError{Index: i, Field: "rating",
				Value: fmt.Sprint(r.Rating), Err: errNegativeRating}
		}
		if r.Date.IsZero() {
			return &MalformedRecordError{Index: i, Field: "date",
				Value: "", Err: errMissingDate}
		}
	}
	return nil
}

// meanStdDev returns the mean and population standard deviation.
func meanStdDev(vals []int) (float64, float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += float64(v)
	}
	mean := sum / float64(len(vals))

	sq := 0.0
	for _, v := range vals {
		d := float64(v) - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(vals)))
}
