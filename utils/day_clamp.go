package utils

import "time"

// AddMonthsClamped advances a date by the given number of months, clamping
// the day-of-month to the last valid day of the target month. The target
// month is resolved by building its first day and adding the month delta, so
// Jan 31 + 1 month lands on Feb 28/29, never on Mar 3 the way a naive
// AddDate would.
func AddMonthsClamped(date time.Time, months int) time.Time {
	firstOfTarget := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location()).
		AddDate(0, months, 0)

	day := date.Day()
	if last := lastDayOfMonth(firstOfTarget); day > last {
		day = last
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

func lastDayOfMonth(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}

// DaysLate reports how many whole calendar days today is past the due date.
// Both inputs are truncated to their dates first; zero or negative means the
// installment is not late.
func DaysLate(dueDate, today time.Time) int {
	due := truncateToDate(dueDate)
	now := truncateToDate(today)
	return int(now.Sub(due).Hours() / 24)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
