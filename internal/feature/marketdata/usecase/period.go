package usecase

import "time"

// defaultPeriodDays is used for unrecognized period strings.
const defaultPeriodDays = 30

// periodDays maps a symbolic period to a fixed day count.
// Months and years are approximated (1mo = 30 days, 1y = 365 days).
var periodDays = map[string]int{
	"1d":  1,
	"5d":  5,
	"1mo": 30,
	"3mo": 90,
	"6mo": 180,
	"1y":  365,
	"2y":  730,
	"5y":  1825,
	"10y": 3650,
}

// PeriodDays returns the number of days covered by period.
func PeriodDays(period string) int {
	if d, ok := periodDays[period]; ok {
		return d
	}
	return defaultPeriodDays
}

// PeriodStart returns the start of the history window for period, counted back from now.
func PeriodStart(now time.Time, period string) time.Time {
	return now.Add(-time.Duration(PeriodDays(period)) * 24 * time.Hour)
}
