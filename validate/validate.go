// Package validate holds the pure value checks applied to caller input
// before anything is sent to Drip. Every function either returns a
// normalized value or a *errors.ValidationError.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/GravityKit/drip-mcp-server/errors"
)

const (
	MaxEmailLength = 254
	MaxTagLength   = 255

	MaxCustomFieldLength = 5000

	// forbiddenTagChars are rejected outright, never stripped.
	forbiddenTagChars = "<>\"'&\n\r\t"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email returns the trimmed, lower-cased address.
// No deliverability check is performed.
func Email(v any) (string, error) {
	if v == nil {
		return "", errors.Invalid("email", "Email is required")
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Invalid("email", "Email must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.Invalid("email", "Email cannot be empty")
	}
	if !emailPattern.MatchString(s) {
		return "", errors.Invalid("email", "Invalid email format: %s", s)
	}
	if len(s) > MaxEmailLength {
		return "", errors.Invalid("email", "Email exceeds maximum length of %d characters", MaxEmailLength)
	}
	return strings.ToLower(s), nil
}

// Tags accepts a single tag or a sequence of tags. Nil entries are
// skipped; any other invalid entry rejects the whole set.
// The result may be empty; callers that need at least one tag
// must check for that themselves.
func Tags(v any) ([]string, error) {
	var items []any
	switch t := v.(type) {
	case nil:
		return []string{}, nil
	case []any:
		items = t
	case []string:
		items = make([]any, 0, len(t))
		for _, s := range t {
			items = append(items, s)
		}
	default:
		items = []any{t}
	}

	tags := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		t, err := validateTag(item)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func validateTag(v any) (string, error) {
	raw, ok := v.(string)
	if !ok {
		return "", errors.Invalid("tags", "Tag must be a string, got %T", v)
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.Invalid("tags", "Tag cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > MaxTagLength {
		return "", errors.Invalid("tags", "Tag exceeds maximum length of %d characters: %s", MaxTagLength, trimmed)
	}
	if strings.ContainsAny(raw, forbiddenTagChars) {
		return "", errors.Invalid("tags", "Tag contains invalid characters: %q", raw)
	}
	return trimmed, nil
}

// EventProperties passes every property through unchanged, except the
// reserved "value" key which must be an integer number.
// Anything that is not an object yields an empty map.
func EventProperties(v any) (map[string]any, error) {
	props, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}

	out := make(map[string]any, len(props))
	for k, val := range props {
		if k == "value" && !isInteger(val) {
			return nil, errors.Invalid(
				"properties.value",
				"Event property 'value' must be an integer, got %v", val,
			)
		}
		out[k] = val
	}
	return out, nil
}

// Amount converts a decimal currency amount into minor units (cents).
func Amount(v any) (int64, error) {
	n, ok := number(v)
	if !ok {
		return 0, errors.Invalid("amount", "Amount must be a number")
	}
	if n < 0 {
		return 0, errors.Invalid("amount", "Amount cannot be negative")
	}
	return int64(math.Round(n * 100)), nil
}

// Number reports the float64 value of any Go numeric type.
// Strings are not numbers here, even when they look like one.
func Number(v any) (float64, bool) {
	return number(v)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func isInteger(v any) bool {
	n, ok := number(v)
	return ok && n == math.Trunc(n)
}

// CustomFieldValue rejects string values longer than MaxCustomFieldLength.
func CustomFieldValue(key string, v any) error {
	s, ok := v.(string)
	if ok && utf8.RuneCountInString(s) > MaxCustomFieldLength {
		return errors.Invalid(
			"custom_fields."+key,
			"Custom field '%s' exceeds maximum length of %d characters", key, MaxCustomFieldLength,
		)
	}
	return nil
}

// describe is used in messages where the caller passed a value of the
// wrong kind.
func describe(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%v (%T)", v, v)
}
