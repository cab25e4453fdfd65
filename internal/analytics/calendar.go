// Package analytics computes dashboard statistics, deadline risk scores and
// the daily focus selection. All functions are pure and total: malformed or
// missing timestamps drop a task from the affected metric, never fail the
// whole computation.
package analytics

import "time"

// sameCalendarDay reports whether a and b fall on the same calendar day in
// b's location. b is the reference instant ("now") so task timestamps are
// interpreted in the caller's frame.
func sameCalendarDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// wholeDays converts a duration to whole days, truncated toward zero. A
// deadline 36 hours out is 1 day away; one 20 hours past is 0 days away.
func wholeDays(d time.Duration) int {
	return int(d.Hours() / 24)
}

// startOfISOWeek returns midnight of the Monday starting t's week, in t's
// location.
func startOfISOWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -daysSinceMonday)
}
