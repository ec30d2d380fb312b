package util

import (
	"time"
)

// Timestamp returns the current time as an RFC3339 UTC string, the format
// used for all timestamps in API payloads.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// FiscalQuarter maps a point in time to its calendar quarter and year.
func FiscalQuarter(t time.Time) (quarter, year int) {
	return (int(t.Month())-1)/3 + 1, t.Year()
}

// PriorQuarter steps one quarter back, crossing the year boundary at Q1.
func PriorQuarter(quarter, year int) (int, int) {
	if quarter == 1 {
		return 4, year - 1
	}
	return quarter - 1, year
}
