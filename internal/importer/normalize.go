package importer

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// NormalizeName returns the matching key for a client name: trimmed, inner
// whitespace collapsed to single spaces, and case folded.
func NormalizeName(name string) string {
	return folder.String(strings.Join(strings.Fields(name), " "))
}

// NormalizeDate converts M/D/YYYY to YYYY-MM-DD. Any other input, including
// ISO dates, is returned trimmed but otherwise unchanged.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)

	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return s
	}

	month, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	day, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	year := strings.TrimSpace(parts[2])
	if err1 != nil || err2 != nil || year == "" {
		return s
	}

	return fmt.Sprintf("%s-%02d-%02d", year, month, day)
}
