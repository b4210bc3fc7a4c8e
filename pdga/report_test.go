/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pdga

import (
	"strings"
	"testing"
)

func TestBuildCalendarOutput(t *testing.T) {
	out := BuildCalendarOutput(day("2024-11-20"))
	for _, want := range []string{
		"Next Update: 2024-12-10 (Tuesday)",
		"Days Until Update: 20",
		"Rounds Count If Played After: 2023-12-12",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%v", want, out)
		}
	}

	out = BuildCalendarOutput(day("2024-10-08"))
	if !strings.Contains(out, "published today") {
		t.Errorf("expected update-day message:\n%v", out)
	}
}

func TestBuildRoundsOutput_Reasons(t *testing.T) {
	res, err := testEstimator(RecencyNewest).Estimate(
		roundsOf(1000, 1000, 1000, 1000, 875), 950)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := BuildRoundsOutput(res)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected header plus 5 rows, got %v:\n%v", len(lines), out)
	}
	// newest first; 875 is the newest round
	if !strings.Contains(lines[1], "875") ||
		!strings.Contains(lines[1], "outlier(avg)") {
		t.Errorf("first row should be the excluded 875 round: %q", lines[1])
	}
}

func TestTruncateName(t *testing.T) {
	if got := truncateName("Short", 10); got != "Short" {
		t.Errorf("got %q", got)
	}
	if got := truncateName("A Very Long Tournament Name", 10); got != "A Very ..." {
		t.Errorf("got %q", got)
	}
}
