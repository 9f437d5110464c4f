package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	ediDatePattern = regexp.MustCompile(`^\d{8}$`)
	ediDateTimePat = regexp.MustCompile(`^(\d{8})-(\d{2})(\d{2})$`)
)

// NormalizeDate rewrites X12 CCYYMMDD dates to FHIR YYYY-MM-DD. Dates already
// in ISO form pass through unchanged, so the function is idempotent. Combined
// CCYYMMDD-HHMM tokens become ISO-8601 UTC instants. Anything else is passed
// through untouched; date fields are descriptive, not identity fields.
func NormalizeDate(value string) string {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		return ""
	case isoDatePattern.MatchString(value):
		return value
	case ediDatePattern.MatchString(value):
		return value[0:4] + "-" + value[4:6] + "-" + value[6:8]
	}
	if m := ediDateTimePat.FindStringSubmatch(value); m != nil {
		return NormalizeDate(m[1]) + "T" + m[2] + ":" + m[3] + ":00Z"
	}
	return value
}

// SplitDateRange splits an RD8 "CCYYMMDD-CCYYMMDD" token into normalized
// start and end dates. A single date yields an equal start and end.
func SplitDateRange(value string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(value), "-", 2)
	if len(parts) == 2 && ediDatePattern.MatchString(parts[0]) && ediDatePattern.MatchString(parts[1]) {
		return NormalizeDate(parts[0]), NormalizeDate(parts[1])
	}
	normalized := NormalizeDate(value)
	return normalized, normalized
}

// ParseAmount parses an X12 monetary element. Empty or malformed elements
// yield zero; amounts are descriptive until summed, and header totals are
// recomputed from lines anyway.
func ParseAmount(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return amount
}

// FormatAmount renders a monetary value the way X12 expects: no trailing
// zeros, no currency symbol.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
