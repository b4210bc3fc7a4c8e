/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pdga

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when there are no rounds to average, either
// because none were supplied or because none passed the inclusion rules.
var ErrEmptyInput = errors.New("no rounds to average")

var (
	errNegativeRating = errors.New("negative rating")
	errMissingDate    = errors.New("missing date")
)

// MalformedRecordError reports a round record that could not be used. The
// whole batch containing it is rejected.
type MalformedRecordError struct {
	Index int
	Field string
	Value string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed round #%v: bad %v %q: %v", e.Index, e.Field,
		e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// SourceUnavailableError reports a failure retrieving data from pdga.com.
type SourceUnavailableError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *SourceUnavailableError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%v %v: HTTP %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%v %v: %v", e.Op, e.URL, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}
