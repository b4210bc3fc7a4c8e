/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import "testing"

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"PAUL  MCBETH":          "Paul Mcbeth",
		"Ricky Wysocki":         "Ricky Wysocki",
		"  The  Ice Bowl 2024 ": "The Ice Bowl 2024",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestParseDateOrZero(t *testing.T) {
	d, err := ParseDateOrZero("")
	if err != nil || !d.IsZero() {
		t.Fatalf("empty: got %v %v", d, err)
	}
	d, err = ParseDateOrZero("2024-03-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Format("2006-01-02") != "2024-03-10" {
		t.Errorf("got %v", d)
	}
}
