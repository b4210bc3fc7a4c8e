/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pdga

import (
	"testing"
	"time"
)

func TestUpdateDate(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  string
	}{
		{2024, time.October, "2024-10-08"},  // 8th is a Tuesday
		{2024, time.January, "2024-01-09"},  // 8th is a Monday
		{2024, time.May, "2024-05-14"},      // 8th is a Wednesday
		{2024, time.December, "2024-12-10"}, // 8th is a Sunday
		{2023, time.December, "2023-12-12"}, // 8th is a Friday
	}
	for _, c := range cases {
		got := UpdateDate(c.year, c.month)
		if got.Format("2006-01-02") != c.want {
			t.Errorf("UpdateDate(%v, %v) = %v; want %v", c.year, c.month,
				got.Format("2006-01-02"), c.want)
		}
		if got.Weekday() != time.Tuesday {
			t.Errorf("UpdateDate(%v, %v) is a %v", c.year, c.month, got.Weekday())
		}
	}
}

func TestNextUpdate(t *testing.T) {
	cases := []struct {
		now  string
		want string
	}{
		{"2024-10-01", "2024-10-08"},
		{"2024-10-08", "2024-10-08"},
		{"2024-10-09", "2024-11-12"},
		{"2024-12-20", "2025-01-14"},
	}
	for _, c := range cases {
		got := NextUpdate(day(c.now).Add(15 * time.Hour))
		if got.Format("2006-01-02") != c.want {
			t.Errorf("NextUpdate(%v) = %v; want %v", c.now,
				got.Format("2006-01-02"), c.want)
		}
	}
}

func TestEligibilityCutoff(t *testing.T) {
	cases := []struct {
		now  string
		want string
	}{
		// next update 2024-11-12, one year back 2023-11-14
		{"2024-10-20", "2023-11-14"},
		{"2024-11-20", "2023-12-12"},
		{"2024-12-20", "2024-01-09"},
	}
	for _, c := range cases {
		got := EligibilityCutoff(day(c.now))
		if got.Format("2006-01-02") != c.want {
			t.Errorf("EligibilityCutoff(%v) = %v; want %v", c.now,
				got.Format("2006-01-02"), c.want)
		}
	}
}
