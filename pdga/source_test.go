/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pdga

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestClient_CurrentRating(t *testing.T) {
	c := newTestClient(t, defaultTestPages())

	r, err := c.CurrentRating(context.Background(), testPdgaNum)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != 860 {
		t.Errorf("current rating: got %v want 860", r)
	}
}

func TestClient_ListRatedEvents(t *testing.T) {
	c := newTestClient(t, defaultTestPages())

	events, err := c.ListRatedEvents(context.Background(), testPdgaNum)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events (XM excluded, duplicate dropped), got %+v",
			events)
	}
	if events[0].Name != "Fall Classic" || events[0].Tier != "C" {
		t.Errorf("first event: got %+v", events[0])
	}
	if events[0].URL != "https://www.pdga.com/tour/event/80001" {
		t.Errorf("event url not resolved: %v", events[0].URL)
	}
	if events[1].Name != "Summer Open" {
		t.Errorf("second event: got %+v", events[1])
	}
}

func TestClient_AlreadyEvaluatedRounds(t *testing.T) {
	c := newTestClient(t, defaultTestPages())

	rounds, err := c.AlreadyEvaluatedRounds(context.Background(), testPdgaNum)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %v", len(rounds))
	}
	last := rounds[2]
	if last.Tournament != "Winter Chill" || last.Rating != 900 {
		t.Errorf("unexpected round %+v", last)
	}
	if !last.Date.Equal(day("2024-01-10")) {
		t.Errorf("multi-day event should use end date; got %v", last.Date)
	}
	if last.Included != InclusionNo || rounds[0].Included != InclusionYes {
		t.Errorf("inclusion flags not parsed: %v %v", rounds[0].Included,
			last.Included)
	}
	if last.Source != OriginEvaluated {
		t.Errorf("source: got %v", last.Source)
	}
}

func TestClient_RoundsForEvent(t *testing.T) {
	c := newTestClient(t, defaultTestPages())
	ev := EventRef{Name: "Fall Classic", URL: "https://www.pdga.com/tour/event/80001"}

	rounds, err := c.RoundsForEvent(context.Background(), testPdgaNum, ev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("expected 1 rated round, got %+v", rounds)
	}
	r := rounds[0]
	if r.Rating != 820 || r.Tournament != "Fall Classic" ||
		!r.Date.Equal(day("2024-11-01")) || r.Source != OriginEvent {
		t.Errorf("unexpected round %+v", r)
	}
}

func TestClient_MalformedRating(t *testing.T) {
	pages := defaultTestPages()
	pages["/player/12345/details"] = `<table><tbody>
<tr><td class="tournament">Bad</td><td class="date">01-Jun-2024</td><td class="round-rating">n/a</td></tr>
</tbody></table>`
	c := newTestClient(t, pages)

	_, err := c.AlreadyEvaluatedRounds(context.Background(), testPdgaNum)
	var mre *MalformedRecordError
	if !errors.As(err, &mre) || mre.Field != "rating" {
		t.Fatalf("expected MalformedRecordError, got %v", err)
	}
}

func TestClient_MissingCurrentRating(t *testing.T) {
	pages := defaultTestPages()
	pages["/player/12345"] = `<html><body><h1>Unknown Player</h1></body></html>`
	c := newTestClient(t, pages)

	_, err := c.CurrentRating(context.Background(), testPdgaNum)
	var mre *MalformedRecordError
	if !errors.As(err, &mre) || mre.Field != "current rating" {
		t.Fatalf("expected MalformedRecordError for current rating, got %v", err)
	}
	if !errors.Is(err, errNoRating) {
		t.Errorf("expected errNoRating in chain, got %v", err)
	}
}

func TestClient_SourceUnavailable(t *testing.T) {
	c := newTestClient(t, map[string]string{})

	_, err := c.CurrentRating(context.Background(), testPdgaNum)
	var sue *SourceUnavailableError
	if !errors.As(err, &sue) {
		t.Fatalf("expected SourceUnavailableError, got %v", err)
	}
	if sue.StatusCode != http.StatusNotFound {
		t.Errorf("status: got %v", sue.StatusCode)
	}
}

func TestParsePdgaDate(t *testing.T) {
	cases := map[string]string{
		"10-Jan-2024":           "2024-01-10",
		"9-Mar-2024":            "2024-03-09",
		"09-Mar to 10-Mar-2024": "2024-03-10",
		" 2024-06-01 ":          "2024-06-01",
	}
	for in, want := range cases {
		got, err := parsePdgaDate(in)
		if err != nil {
			t.Errorf("parsePdgaDate(%q): %v", in, err)
			continue
		}
		if got.Format("2006-01-02") != want {
			t.Errorf("parsePdgaDate(%q) = %v; want %v", in,
				got.Format("2006-01-02"), want)
		}
	}

	if _, err := parsePdgaDate(""); err == nil {
		t.Errorf("expected error for empty date")
	}
}

func TestParseManualRatings(t *testing.T) {
	got, err := ParseManualRatings("950,960 972")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[0] != 950 || got[2] != 972 {
		t.Errorf("got %v", got)
	}

	_, err = ParseManualRatings("950,abc")
	var mre *MalformedRecordError
	if !errors.As(err, &mre) || mre.Index != 1 {
		t.Fatalf("expected MalformedRecordError at 1, got %v", err)
	}
}

func TestManualRounds(t *testing.T) {
	today := time.Date(2024, 11, 20, 17, 30, 0, 0, time.UTC)
	rounds := ManualRounds([]int{950, 960}, today)
	if len(rounds) != 2 {
		t.Fatalf("got %v rounds", len(rounds))
	}
	for _, r := range rounds {
		if r.Included != InclusionYes || r.Source != OriginManual {
			t.Errorf("manual round not forced included: %+v", r)
		}
		if !r.Date.Equal(day("2024-11-20")) {
			t.Errorf("manual round not dated today: %v", r.Date)
		}
	}
}
