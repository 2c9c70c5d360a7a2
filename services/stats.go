package services

import "time"

// GrowthPercent computes the month-over-month growth shown on the admin
// dashboard. With nothing in the previous window, any activity counts as
// full growth.
func GrowthPercent(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// MonthWindows returns [start of previous month, start of current month,
// start of next month) boundaries around now.
func MonthWindows(now time.Time) (prevStart, curStart, nextStart time.Time) {
	curStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevStart = curStart.AddDate(0, -1, 0)
	nextStart = curStart.AddDate(0, 1, 0)
	return prevStart, curStart, nextStart
}
