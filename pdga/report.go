/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pdga

import (
	"fmt"
	"strings"
	"time"
)

// BuildEstimateOutput summarizes an estimate for display.
func BuildEstimateOutput(num PdgaNum, currentRating int,
	res *EstimateResult) string {

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("PDGA #%v\n", num))
	sb.WriteString(fmt.Sprintf("Current Rating: %v\n", currentRating))
	sb.WriteString(fmt.Sprintf("Estimated Rating: %v (%+d)\n", res.Rating,
		res.Rating-currentRating))
	sb.WriteString(fmt.Sprintf("Rounds Counted: %v of %v (%v double weighted)\n",
		res.Counted, len(res.Rounds), res.Doubled))
	sb.WriteString(fmt.Sprintf("Eligible After: %v\n",
		res.Cutoff.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Next Update: %v\n",
		UpdateDate(res.Cutoff.Year()+1, res.Cutoff.Month()).Format("2006-01-02")))

	return sb.String()
}

// BuildRoundsOutput renders every round with the estimator's decision, most
// recent first.
func BuildRoundsOutput(res *EstimateResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-10s %6s %-9s %-4s %-6s %-14s %s\n",
		"Date", "Rating", "Source", "PDGA", "Counts", "Reason", "Tournament"))
	for i := len(res.Rounds) - 1; i >= 0; i-- {
		rr := res.Rounds[i]
		counts := "no"
		if rr.WillCount {
			counts = "yes"
			if rr.Weight == 2 {
				counts = "yes x2"
			}
		}
		sb.WriteString(fmt.Sprintf("%-10s %6d %-9s %-4s %-6s %-14s %s\n",
			rr.Date.Format("2006-01-02"), rr.Rating, rr.Source, rr.Included,
			counts, rr.Reason, truncateName(rr.Tournament, 40)))
	}

	return sb.String()
}

func truncateName(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max-3]) + "..."
	}
	return s
}

// BuildCalendarOutput describes the next ratings update as of now.
func BuildCalendarOutput(now time.Time) string {
	next := NextUpdate(now)
	cutoff := EligibilityCutoff(now)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("As Of: %v\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Next Update: %v (%v)\n",
		next.Format("2006-01-02"), next.Weekday()))
	days := int(next.Sub(truncateDay(now)).Hours() / 24)
	if days == 0 {
		sb.WriteString("Ratings are published today.\n")
	} else {
		sb.WriteString(fmt.Sprintf("Days Until Update: %v\n", days))
	}
	sb.WriteString(fmt.Sprintf("Rounds Count If Played After: %v\n",
		cutoff.Format("2006-01-02")))

	return sb.String()
}
