package utils

import (
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// SplitCSV splits "a, b,,c" into [a b c].
func SplitCSV(value string) []string {
	if value == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Slugify turns a product title into its URL slug, transliterating
// non-ASCII letters.
func Slugify(s string) string {
	return slug.Make(s)
}
