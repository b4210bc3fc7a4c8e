/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pdga

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PdgaNum is a PDGA membership number.
type PdgaNum int

// Inclusion is the round's inclusion flag as reported by pdga.com. It is
// informational only; the estimator recomputes inclusion itself.
type Inclusion int

const (
	InclusionUnknown Inclusion = iota
	InclusionYes
	InclusionNo
)

func (i Inclusion) String() string {
	switch i {
	case InclusionYes:
		return "Yes"
	case InclusionNo:
		return "No"
	default:
		return "?"
	}
}

func parseInclusion(s string) Inclusion {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y":
		return InclusionYes
	case "no", "n":
		return InclusionNo
	default:
		return InclusionUnknown
	}
}

// RoundOrigin records where a round came from.
type RoundOrigin int

const (
	// OriginEvaluated rounds are already factored into the current rating
	OriginEvaluated RoundOrigin = iota
	// OriginEvent rounds were read from an event results page
	OriginEvent
	// OriginManual rounds were supplied by the user
	OriginManual
)

func (o RoundOrigin) String() string {
	switch o {
	case OriginEvaluated:
		return "evaluated"
	case OriginEvent:
		return "new"
	case OriginManual:
		return "manual"
	default:
		return "?"
	}
}

// Round is a single rated round for a player.
type Round struct {
	Tournament string
	// end date for multi-day events
	Date     time.Time
	Rating   int
	Included Inclusion
	Source   RoundOrigin
}

// EventRef identifies an event on a player's results page.
type EventRef struct {
	Name string
	Tier string
	URL  string
}

// ManualRounds builds synthetic rounds for ratings not yet visible on
// pdga.com. They are dated today and always marked included.
func ManualRounds(ratings []int, today time.Time) []Round {
	day := truncateDay(today)
	out := make([]Round, 0, len(ratings))
	for i, r := range ratings {
		out = append(out, Round{
			Tournament: fmt.Sprintf("Manual entry #%v", i+1),
			Date:       day,
			Rating:     r,
			Included:   InclusionYes,
			Source:     OriginManual,
		})
	}
	return out
}

// ParseManualRatings parses a comma and/or whitespace separated list of
// round ratings, e.g. "950,960 972".
func ParseManualRatings(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	var out []int
	for i, f := range fields {
		r, err := strconv.Atoi(f)
		if err != nil {
			return nil, &MalformedRecordError{Index: i, Field: "rating",
				Value: f, Err: err}
		}
		if r < 0 {
			return nil, &MalformedRecordError{Index: i, Field: "rating",
				Value: f, Err: errNegativeRating}
		}
		out = append(out, r)
	}
	return out, nil
}

// truncateDay drops the time of day, keeping the calendar date in UTC.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
