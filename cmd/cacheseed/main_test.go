/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mikeb26/pdga-ratingest/pdga"
)

func TestReadPdgaNums(t *testing.T) {
	in := "# league regulars\n12345\n\n67890\n12345\n"
	got, err := readPdgaNums(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []pdga.PdgaNum{12345, 67890}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}

	for _, bad := range []string{"12345\nabc\n", "123abc\n", "-5\n", "0\n"} {
		if _, err := readPdgaNums(strings.NewReader(bad)); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}

	got, err = readPdgaNums(strings.NewReader("  12345  \n"))
	if err != nil || len(got) != 1 || got[0] != 12345 {
		t.Errorf("surrounding spaces: got %v, %v", got, err)
	}
}
