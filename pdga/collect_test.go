/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pdga

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestCollectRounds(t *testing.T) {
	c := newTestClient(t, defaultTestPages())

	col, err := CollectRounds(context.Background(), c, testPdgaNum, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col.CurrentRating != 860 {
		t.Errorf("current rating: got %v", col.CurrentRating)
	}
	if len(col.NewEvents) != 1 || col.NewEvents[0].Name != "Fall Classic" {
		t.Fatalf("new events: got %+v", col.NewEvents)
	}
	if len(col.Rounds) != 4 {
		t.Fatalf("expected 3 evaluated + 1 new round, got %+v", col.Rounds)
	}

	est := DefaultEstimator()
	est.Now = func() time.Time { return day("2024-11-20") }
	res, err := est.Estimate(col.Rounds, col.CurrentRating)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if res.Rating != 854 {
		t.Errorf("estimated rating: got %v want 854", res.Rating)
	}

	out := BuildRoundsOutput(res)
	if !strings.Contains(out, "Fall Classic") || !strings.Contains(out, "yes x2") {
		t.Errorf("rounds output missing content:\n%v", out)
	}
	summary := BuildEstimateOutput(testPdgaNum, col.CurrentRating, res)
	if !strings.Contains(summary, "Estimated Rating: 854 (-6)") {
		t.Errorf("summary missing estimate:\n%v", summary)
	}
}

func TestCollectRounds_EventFailureAborts(t *testing.T) {
	pages := defaultTestPages()
	delete(pages, "/tour/event/80001")
	c := newTestClient(t, pages)

	col, err := CollectRounds(context.Background(), c, testPdgaNum, 1)
	var sue *SourceUnavailableError
	if !errors.As(err, &sue) {
		t.Fatalf("expected SourceUnavailableError, got %v", err)
	}
	if col != nil {
		t.Errorf("expected no partial collection")
	}
}
