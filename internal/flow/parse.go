package flow

import (
	"strconv"
	"strings"
)

// ParseDecimal parses a decimal number accepting both '.' and ',' as the
// decimal separator, matching what users type on localized keyboards.
func ParseDecimal(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}

// ParseCount parses a strictly integer value (tooth counts).
func ParseCount(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// normalizeKey lowercases and trims an enum answer so matching against
// catalog keys is case-insensitive.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// matchKey returns the catalog key the input refers to, if any.
func matchKey(options []string, input string) (string, bool) {
	key := normalizeKey(input)
	for _, opt := range options {
		if key == opt {
			return opt, true
		}
	}
	return "", false
}

// formatDimension renders a catalog dimension value the way its key is
// written, without trailing zeros.
func formatDimension(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
