// Package patch implements the partial-update rule shared by every entity:
// a field is applied only when the incoming payload carries a non-empty value,
// otherwise the stored value is left untouched.
package patch

import "time"

const dateLayout = "2006-01-02"

// Field overwrites dst when src is non-zero.
func Field[T comparable](dst *T, src T) {
	var zero T
	if src == zero {
		return
	}
	*dst = src
}

// Nullable overwrites a nullable destination when src is non-zero.
func Nullable[T comparable](dst **T, src T) {
	var zero T
	if src == zero {
		return
	}
	value := src
	*dst = &value
}

// Date parses src as YYYY-MM-DD and overwrites dst when it parses.
// Unparseable values are ignored, matching the lenient bulk-input contract.
func Date(dst **time.Time, src string) {
	parsed, ok := ParseDate(src)
	if !ok {
		return
	}
	*dst = &parsed
}

// ParseDate parses a YYYY-MM-DD date string in UTC.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// FormatDate renders a date as YYYY-MM-DD, or "" for nil.
func FormatDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(dateLayout)
}
