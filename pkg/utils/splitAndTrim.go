package utils

import "strings"

// SplitAndTrim splits the input on the separator and trims whitespace
// around the parts, dropping empty ones.
func SplitAndTrim(input string, separator string) []string {
	parts := []string{}
	for _, part := range strings.Split(input, separator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parts = append(parts, part)
	}
	return parts
}
