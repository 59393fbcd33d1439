// Package delimited tokenizes pasted spreadsheet text (CSV or TSV) into rows.
//
// The tokenizer is intentionally looser than encoding/csv: a double quote
// anywhere toggles quoting and is dropped, rows may have any number of fields,
// and malformed quoting never fails. An unbalanced quote leaves the rest of
// the line quoted.
package delimited

import "strings"

// Delimiter returns '\t' if text contains a tab anywhere, otherwise ','.
func Delimiter(text string) rune {
	if strings.ContainsRune(text, '\t') {
		return '\t'
	}
	return ','
}

// Parse splits text into rows of trimmed fields. Lines that are blank after
// trimming are dropped.
func Parse(text string) [][]string {
	delim := Delimiter(text)

	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, ParseLine(line, delim))
	}
	return rows
}

// ParseLine splits a single line on delim, honoring double-quote toggling.
func ParseLine(line string, delim rune) []string {
	var (
		fields   []string
		field    strings.Builder
		inQuotes bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	return append(fields, strings.TrimSpace(field.String()))
}
