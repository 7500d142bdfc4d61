// Package expiry classifies tracked documents (insurance, licence, emission test...)
// by how close their expiry date is to a reference moment.
//
// Classification is a read-time view: nothing here is persisted and every call is
// independent, so Classify is safe to call concurrently once per document.
package expiry

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// DateLayout is the only accepted expiry date format (calendar date, no time of day).
const DateLayout = "2006-01-02"

// ExpiringThresholdDays is the inclusive upper bound of the "expiring" band.
const ExpiringThresholdDays = 30

// ErrInvalidDateFormat is returned for a non-empty expiry date that is not a
// well-formed, existing YYYY-MM-DD calendar date.
var ErrInvalidDateFormat = errors.New("invalid date format")

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Status is the band a document falls into.
type Status string

const (
	StatusNone     Status = "none"
	StatusExpired  Status = "expired"
	StatusExpiring Status = "expiring"
	StatusValid    Status = "valid"
)

// Progress bar proportions. These are fixed per band, not a function of days left.
const (
	FractionEmpty    = 0.0
	FractionExpiring = 0.3
	FractionFull     = 1.0
)

// Result is the outcome of classifying one expiry date.
type Result struct {
	Status          Status  `json:"status"`
	DaysRemaining   int     `json:"daysRemaining"`
	DisplayFraction float64 `json:"displayFraction"`
}

// Parse validates s and returns it as midnight in loc.
func Parse(s string, loc *time.Location) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q does not match YYYY-MM-DD", ErrInvalidDateFormat, s)
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalidDateFormat, s)
	}
	return t, nil
}

// Validate reports whether s may be stored as an expiry date. Empty is allowed
// (the document simply has no expiry).
func Validate(s string) error {
	if s == "" {
		return nil
	}
	_, err := Parse(s, time.UTC)
	return err
}

// Classify maps expiryDate to a status band relative to now. The date counts
// from local midnight in now's location. A date equal to now's calendar date is
// the current day: it reports expired with zero days remaining, never a
// negative count.
func Classify(expiryDate string, now time.Time) (Result, error) {
	if expiryDate == "" {
		return Result{Status: StatusNone, DisplayFraction: FractionEmpty}, nil
	}
	exp, err := Parse(expiryDate, now.Location())
	if err != nil {
		return Result{}, err
	}

	days := DaysUntil(exp, now)
	switch {
	case days <= 0:
		return Result{Status: StatusExpired, DaysRemaining: 0, DisplayFraction: FractionEmpty}, nil
	case days <= ExpiringThresholdDays:
		return Result{Status: StatusExpiring, DaysRemaining: days, DisplayFraction: FractionExpiring}, nil
	default:
		return Result{Status: StatusValid, DaysRemaining: days, DisplayFraction: FractionFull}, nil
	}
}

// DaysUntil counts calendar days from now's date to date's date, both read in
// now's location. Outside DST changes this equals rounding the hour distance
// from now to midnight(date) up to whole days. Across a DST change it does not:
// a 25-hour day would round 49h up to 3, while this reports the 2 calendar days
// a person reading the dates expects.
func DaysUntil(date, now time.Time) int {
	ey, em, ed := date.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	a := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC).Unix()
	b := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC).Unix()
	return int((b - a) / 86400)
}
