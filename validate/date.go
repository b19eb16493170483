package validate

import (
	"math"
	"strings"
	"time"

	"github.com/GravityKit/drip-mcp-server/errors"
)

// TimestampLayout is the canonical text form of every timestamp sent to Drip.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

const (
	DefaultMaxPastDays   = 3650
	DefaultMaxFutureDays = 365

	maxYear = 3000
)

// Inputs without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02",
}

// now is swapped in tests.
var now = time.Now

type DateOptions struct {
	// MaxPastDays rejects dates older than N days before now.
	MaxPastDays int
	// MaxFutureDays rejects dates more than N days ahead of now.
	MaxFutureDays int
	AllowFuture   bool
	AllowPast     bool
	// FieldName is used in error messages.
	FieldName string
}

func DefaultDateOptions() DateOptions {
	return DateOptions{
		MaxPastDays:   DefaultMaxPastDays,
		MaxFutureDays: DefaultMaxFutureDays,
		AllowFuture:   true,
		AllowPast:     true,
		FieldName:     "date",
	}
}

// EventDateOptions is the recency window of tracked events.
func EventDateOptions() DateOptions {
	return DateOptions{
		MaxPastDays:   365,
		MaxFutureDays: 1,
		AllowFuture:   false,
		AllowPast:     true,
		FieldName:     "occurred_at",
	}
}

// ConversionDateOptions is the recency window of recorded conversions.
func ConversionDateOptions() DateOptions {
	return DateOptions{
		MaxPastDays:   30,
		MaxFutureDays: 0,
		AllowFuture:   false,
		AllowPast:     true,
		FieldName:     "occurred_at",
	}
}

// PurchaseDateOptions is the recency window of recorded purchases.
func PurchaseDateOptions() DateOptions {
	return DateOptions{
		MaxPastDays:   90,
		MaxFutureDays: 0,
		AllowFuture:   false,
		AllowPast:     true,
		FieldName:     "occurred_at",
	}
}

// Date validates v against opts and returns it in TimestampLayout.
// A missing value means "now".
func Date(v any, opts DateOptions) (string, error) {
	field := opts.FieldName
	if field == "" {
		field = "date"
	}

	current := now()
	if isMissing(v) {
		return current.UTC().Format(TimestampLayout), nil
	}

	t, ok := ParseTime(v)
	if !ok {
		return "", errors.Invalid(field, "Invalid %s: %s", field, describe(v))
	}

	if t.Before(time.Unix(0, 0)) {
		return "", errors.Invalid(field, "%s cannot be before 1970-01-01", field)
	}
	if t.UTC().Year() > maxYear {
		return "", errors.Invalid(field, "%s cannot be after the year %d", field, maxYear)
	}

	if t.After(current) {
		if !opts.AllowFuture {
			return "", errors.Invalid(field, "%s cannot be in the future", field)
		}
		if t.After(current.AddDate(0, 0, opts.MaxFutureDays)) {
			return "", errors.Invalid(
				field, "%s cannot be more than %d days in the future", field, opts.MaxFutureDays,
			)
		}
	}
	if t.Before(current) {
		if !opts.AllowPast {
			return "", errors.Invalid(field, "%s cannot be in the past", field)
		}
		if t.Before(current.AddDate(0, 0, -opts.MaxPastDays)) {
			return "", errors.Invalid(
				field, "%s cannot be more than %d days in the past", field, opts.MaxPastDays,
			)
		}
	}

	return t.UTC().Format(TimestampLayout), nil
}

// ParseTime reads a timestamp from a string in one of the supported
// layouts, a number of epoch milliseconds, or a time.Time.
func ParseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	}

	if ms, ok := number(v); ok && ms == math.Trunc(ms) {
		return time.UnixMilli(int64(ms)).UTC(), true
	}
	return time.Time{}, false
}

func isMissing(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
