/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pdga

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/pdga-ratingest/internal"
)

var (
	errNoDate   = errors.New("no date")
	errNoRating = errors.New("no current rating")
)

// parsePdgaDate parses dates as shown on pdga.com, e.g. "10-Jan-2024" or
// "09-Mar to 10-Mar-2024". Multi-day events resolve to their end date.
func parsePdgaDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, " to "); i >= 0 {
		s = strings.TrimSpace(s[i+len(" to "):])
	}
	for _, layout := range []string{"02-Jan-2006", "2-Jan-2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	t, err := internal.ParseDateOrZero(s)
	if err != nil {
		return time.Time{}, err
	}
	if t.IsZero() {
		return time.Time{}, errNoDate
	}
	return truncateDay(t), nil
}

func cellText(row *goquery.Selection, class string) string {
	return strings.TrimSpace(row.Find("td." + class).First().Text())
}

// parseEvaluatedRounds reads the ratings table of a player's details page.
func parseEvaluatedRounds(doc *goquery.Document) ([]Round, error) {
	var rounds []Round
	var parseErr error

	doc.Find("tbody tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		ratingStr := cellText(row, "round-rating")
		if ratingStr == "" {
			// not a rated round row
			return true
		}
		rating, err := strconv.Atoi(ratingStr)
		if err == nil && rating < 0 {
			err = errNegativeRating
		}
		if err != nil {
			parseErr = &MalformedRecordError{Index: i, Field: "rating",
				Value: ratingStr, Err: err}
			return false
		}
		dateStr := cellText(row, "date")
		date, err := parsePdgaDate(dateStr)
		if err != nil {
			parseErr = &MalformedRecordError{Index: i, Field: "date",
				Value: dateStr, Err: err}
			return false
		}

		rounds = append(rounds, Round{
			Tournament: internal.NormalizeName(cellText(row, "tournament")),
			Date:       date,
			Rating:     rating,
			Included:   parseInclusion(cellText(row, "included")),
			Source:     OriginEvaluated,
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return rounds, nil
}

var currentRatingRE = regexp.MustCompile(`(?i)rating:?\s*(\d+)`)

// parseCurrentRating reads e.g. "Current Rating: 935 (as of 08-Oct-2024)".
func parseCurrentRating(num PdgaNum, doc *goquery.Document) (int, error) {
	sel := doc.Find(".current-rating").First()
	if sel.Length() == 0 {
		return 0, &MalformedRecordError{Index: 0, Field: "current rating",
			Value: "", Err: fmt.Errorf("player %v: %w", num, errNoRating)}
	}
	text := strings.Join(strings.Fields(sel.Text()), " ")
	m := currentRatingRE.FindStringSubmatch(text)
	if m == nil {
		return 0, &MalformedRecordError{Index: 0, Field: "current rating",
			Value: text, Err: errNoRating}
	}
	return strconv.Atoi(m[1])
}

// parseEvents reads the tournament result tables of a player's page.
// Events from excluded tiers are skipped, as are repeats of an event name
// (a player can appear in more than one division).
func (c *Client) parseEvents(doc *goquery.Document) []EventRef {
	var events []EventRef
	seen := make(map[string]bool)

	// the divisional points table has no tournament column so it falls out
	// of this selection
	doc.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("td.tournament a").First()
		if link.Length() == 0 {
			return
		}
		name := internal.NormalizeName(link.Text())
		href, ok := link.Attr("href")
		if name == "" || !ok {
			return
		}
		tier := strings.ToUpper(cellText(row, "tier"))
		if c.excludedTiers.Contains(tier) {
			c.log.Debugf("pdga.events: skipping %v (tier %v)", name, tier)
			return
		}
		if seen[name] {
			return
		}
		seen[name] = true
		events = append(events, EventRef{
			Name: name,
			Tier: tier,
			URL:  c.resolve(href),
		})
	})

	return events
}

// parseEventRounds reads a player's round ratings from an event results page.
func parseEventRounds(num PdgaNum, ev EventRef,
	doc *goquery.Document) ([]Round, error) {

	dateStr := strings.TrimSpace(doc.Find(".tournament-date").First().Text())
	dateStr = strings.TrimSpace(strings.TrimPrefix(dateStr, "Date:"))
	date, err := parsePdgaDate(dateStr)
	if err != nil {
		return nil, &MalformedRecordError{Index: 0, Field: "date",
			Value: dateStr, Err: err}
	}

	want := strconv.Itoa(int(num))
	var rounds []Round
	var parseErr error
	doc.Find("tbody tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if cellText(row, "pdga-number") != want {
			return true
		}
		row.Find("td.round-rating").EachWithBreak(func(_ int,
			cell *goquery.Selection) bool {

			txt := strings.TrimSpace(cell.Text())
			if txt == "" {
				// round not played or not yet rated
				return true
			}
			rating, err := strconv.Atoi(txt)
			if err == nil && rating < 0 {
				err = errNegativeRating
			}
			if err != nil {
				parseErr = &MalformedRecordError{Index: len(rounds),
					Field: "rating", Value: txt, Err: err}
				return false
			}
			rounds = append(rounds, Round{
				Tournament: ev.Name,
				Date:       date,
				Rating:     rating,
				Included:   InclusionUnknown,
				Source:     OriginEvent,
			})
			return true
		})
		return parseErr == nil
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return rounds, nil
}
