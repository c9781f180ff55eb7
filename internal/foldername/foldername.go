// Package foldername parses delivery folder names into shoot metadata.
// A shoot folder encodes a date, a start time, optionally the couple's
// names in parentheses and a trailing cut count, e.g.
// "2025.09.13 11시30분 (최다솔 안연주) - 작가(480)".
package foldername

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Meta is the structured metadata extracted from a folder name.
type Meta struct {
	Date         string `json:"date"` // YYYY.MM.DD
	Time         string `json:"time"` // HH:MM, 24-hour
	Couple       string `json:"couple,omitempty"`
	CutsFromName *int   `json:"cuts_from_name,omitempty"`
}

var (
	datePattern   = regexp.MustCompile(`(\d{4})[.\-/](\d{2})[.\-/](\d{2})`)
	timePattern   = regexp.MustCompile(`(\d{1,2})시\s*(\d{1,2})?분?|(\d{1,2}):(\d{2})`)
	couplePattern = regexp.MustCompile(`\(([^)]+)\)`)
	cutsPattern   = regexp.MustCompile(`[-\s]*[^(]*\((\d+)\)\s*$`)
)

// Parse extracts shoot metadata from a folder name or path. It returns
// nil when the name does not encode a shoot: a date and a time are
// mandatory, couple names and cut count are optional. Parse is pure and
// never fails with an error; nil simply means "not a shoot folder".
func Parse(name string) *Meta {
	base := lastSegment(name)
	if base == "" {
		return nil
	}

	date, ok := extractDate(base)
	if !ok {
		return nil
	}
	tm, ok := extractTime(base)
	if !ok {
		return nil
	}

	return &Meta{
		Date:         date,
		Time:         tm,
		Couple:       extractCouple(base),
		CutsFromName: extractCuts(base),
	}
}

// lastSegment strips any leading path, accepting both separators since
// folder names arrive from drag-and-drop on arbitrary platforms.
func lastSegment(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		return name[i+1:]
	}
	return name
}

// extractDate finds the first YYYY.MM.DD date, also accepting "-" and
// "/" separators, normalized to dots.
func extractDate(name string) (string, bool) {
	m := datePattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1] + "." + m[2] + "." + m[3], true
}

// extractTime finds the first time written either as "11시30분" (minutes
// optional, defaulting to 00) or as "11:30", normalized to HH:MM.
func extractTime(name string) (string, bool) {
	m := timePattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	switch {
	case m[1] != "":
		minute := m[2]
		if minute == "" {
			minute = "00"
		}
		return pad2(m[1]) + ":" + pad2(minute), true
	case m[3] != "" && m[4] != "":
		return pad2(m[3]) + ":" + pad2(m[4]), true
	}
	return "", false
}

// extractCouple takes the first parenthesized group and keeps only
// Hangul characters. Names like "(케이(K)(박정현 서주연))" collapse to the
// Hangul content of the outermost group that closes first.
func extractCouple(name string) string {
	m := couplePattern.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	var b strings.Builder
	for _, r := range m[1] {
		if r >= 0xAC00 && r <= 0xD7AF {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// extractCuts matches a trailing parenthesized integer such as
// "- 작가(480)" at the end of the name.
func extractCuts(name string) *int {
	m := cutsPattern.FindStringSubmatch(name)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// NormalizeTime converts any supported time spelling to canonical
// zero-padded HH:MM so that "11시30분", "11:30" and "11시 30분" compare
// equal, and "9:30" equals "09:30". Unrecognized input is returned
// whitespace-stripped so unequal values stay unequal.
func NormalizeTime(s string) string {
	t := strings.Join(strings.Fields(s), "")
	t = strings.ReplaceAll(t, "시", ":")
	t = strings.ReplaceAll(t, "분", "")
	if strings.HasSuffix(t, ":") {
		t += "00"
	}
	h, m, ok := strings.Cut(t, ":")
	if !ok || h == "" || m == "" {
		return t
	}
	return pad2(h) + ":" + pad2(m)
}

// NormalizeNames lowercases couple names and removes whitespace and
// commas, the separators that differ between folder names and schedule
// records.
func NormalizeNames(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) || r == ',' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
