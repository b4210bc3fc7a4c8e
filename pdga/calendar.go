/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pdga

import "time"

// PDGA publishes ratings monthly on the 2nd Tuesday of the month, i.e. the
// first Tuesday on or after the 8th. Rounds count if they were played within
// the 12 months preceding an update.

// UpdateDate returns the ratings update date for the given month.
func UpdateDate(year int, month time.Month) time.Time {
	eighth := time.Date(year, month, 8, 0, 0, 0, 0, time.UTC)
	days := (int(time.Tuesday) - int(eighth.Weekday()) + 7) % 7
	return eighth.AddDate(0, 0, days)
}

// NextUpdate returns the first update date on or after now's calendar date.
func NextUpdate(now time.Time) time.Time {
	today := truncateDay(now)
	upd := UpdateDate(today.Year(), today.Month())
	if today.After(upd) {
		// time.Date normalizes month 13 into January of the next year
		next := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, time.UTC)
		upd = UpdateDate(next.Year(), next.Month())
	}
	return upd
}

// EligibilityCutoff returns the date a round must be strictly after in order
// to count toward the next update: the update date 12 months before
// NextUpdate(now).
func EligibilityCutoff(now time.Time) time.Time {
	next := NextUpdate(now)
	return UpdateDate(next.Year()-1, next.Month())
}
