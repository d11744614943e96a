package roi

import (
	"fmt"
	"strings"
)

// Fixed period factors used to bring task volume to a monthly figure.
const (
	workDaysPerMonth  = 22
	weeksPerMonth     = 4.33
	monthsPerQuarter  = 3
	monthsPerYear     = 12
	minutesPerHour    = 60
	workHoursPerYear  = 2080
	paybackNeverMonth = 999
)

// MonthlyTaskVolume converts a task count per period into tasks per month.
// An empty unit is read as monthly.
func MonthlyTaskVolume(volume float64, unit string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "day", "daily":
		return volume * workDaysPerMonth, nil
	case "week", "weekly":
		return volume * weeksPerMonth, nil
	case "", "month", "monthly":
		return volume, nil
	case "quarter", "quarterly":
		return volume / monthsPerQuarter, nil
	case "year", "yearly", "annual":
		return volume / monthsPerYear, nil
	default:
		return 0, fmt.Errorf("unknown task volume unit %q", unit)
	}
}

// MinutesPerTask converts time per task into minutes. An empty unit is read as minutes.
func MinutesPerTask(duration float64, unit string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "minute", "minutes":
		return duration, nil
	case "hour", "hours":
		return duration * minutesPerHour, nil
	default:
		return 0, fmt.Errorf("unknown time unit %q", unit)
	}
}
