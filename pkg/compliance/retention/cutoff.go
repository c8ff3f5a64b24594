package retention

import "time"

// Cutoff returns now minus the given number of calendar years.
//
// Month, day, clock time and location are preserved; only the year changes.
// February 29 mapped into a non-leap year is clamped to February 28 rather
// than rolling over into March (time.AddDate would yield March 1).
//
// years <= 0 returns now unchanged.
func Cutoff(now time.Time, years int) time.Time {
	if years <= 0 {
		return now
	}

	year, month, day := now.Date()
	target := year - years
	if month == time.February && day == 29 && !isLeap(target) {
		day = 28
	}

	return time.Date(target, month, day,
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
