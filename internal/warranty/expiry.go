package warranty

import (
	"errors"
	"time"
)

// DateLayout is the calendar-date format used everywhere on the wire.
const DateLayout = "2006-01-02"

// ExpiringSoonDays is the inclusive upper bound of the expiring-soon window.
const ExpiringSoonDays = 5

var ErrNegativeWarranty = errors.New("warranty period must be a non-negative number of days")

// Status classifies a product by its remaining warranty coverage.
type Status string

const (
	StatusExpired      Status = "Expired"
	StatusExpiringSoon Status = "ExpiringSoon"
	StatusActive       Status = "Active"
)

// Date truncates t to a calendar date: midnight UTC.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date.
func Today() time.Time {
	return Date(time.Now().UTC())
}

// ComputeExpiry returns the purchase date shifted by warrantyDays calendar days.
func ComputeExpiry(purchase time.Time, warrantyDays int) (time.Time, error) {
	if warrantyDays < 0 {
		return time.Time{}, ErrNegativeWarranty
	}
	return Date(purchase).AddDate(0, 0, warrantyDays), nil
}

// DaysRemaining returns the signed number of calendar days from today until
// expiry. Negative once the expiry date has passed, zero on the expiry date
// itself.
func DaysRemaining(today, expiry time.Time) int {
	return int(Date(expiry).Sub(Date(today)) / (24 * time.Hour))
}

// StatusFor maps a days-remaining value onto exactly one status.
func StatusFor(daysRemaining int) Status {
	switch {
	case daysRemaining < 0:
		return StatusExpired
	case daysRemaining <= ExpiringSoonDays:
		return StatusExpiringSoon
	default:
		return StatusActive
	}
}

// ComputeStatus classifies expiry against the given reference date.
func ComputeStatus(today, expiry time.Time) Status {
	return StatusFor(DaysRemaining(today, expiry))
}
