package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"appointment-sync/core/constants"
)

var (
	amPmPattern   = regexp.MustCompile(`(\d{1,2})\s*(am|pm)`)
	clockPattern  = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	spacePattern  = regexp.MustCompile(`\s+`)
	unsafePattern = regexp.MustCompile(`[<>"']`)
)

func newDateParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// normalizeDate turns a date expression into YYYY-MM-DD. Already
// well-formed dates pass through; relative expressions ("tomorrow",
// "next tuesday") are resolved against now. Empty string means the
// expression could not be understood.
func normalizeDate(w *when.Parser, raw string, now time.Time) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if _, err := time.Parse(constants.DateLayout, raw); err == nil {
		return raw
	}

	switch strings.ToLower(raw) {
	case "today":
		return now.Format(constants.DateLayout)
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(constants.DateLayout)
	case "next week":
		return now.AddDate(0, 0, 7).Format(constants.DateLayout)
	case "next month":
		return now.AddDate(0, 0, 30).Format(constants.DateLayout)
	}

	if r, err := w.Parse(raw, now); err == nil && r != nil {
		return r.Time.Format(constants.DateLayout)
	}
	return ""
}

// normalizeTime turns a time expression into HH:MM. Handles "2 pm",
// day-part words and bare 24-hour values.
func normalizeTime(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return ""
	}

	if m := amPmPattern.FindStringSubmatch(raw); m != nil {
		hour := 0
		fmt.Sscanf(m[1], "%d", &hour)
		if m[2] == "pm" && hour != 12 {
			hour += 12
		} else if m[2] == "am" && hour == 12 {
			hour = 0
		}
		return fmt.Sprintf("%02d:00", hour)
	}

	switch {
	case strings.Contains(raw, "morning"):
		return "09:00"
	case strings.Contains(raw, "afternoon"):
		return "14:00"
	case strings.Contains(raw, "evening"):
		return "18:00"
	case strings.Contains(raw, "night"):
		return "20:00"
	}

	if clockPattern.MatchString(raw) {
		if t, err := time.Parse(constants.TimeLayout, raw); err == nil {
			return t.Format(constants.TimeLayout)
		}
	}
	return ""
}

// sanitizeDescription collapses whitespace, strips markup-prone
// characters and caps the length at 200 runes. Truncation counts runes,
// not bytes, so a multi-byte character is never split mid-sequence.
func sanitizeDescription(desc string) string {
	desc = spacePattern.ReplaceAllString(strings.TrimSpace(desc), " ")
	desc = unsafePattern.ReplaceAllString(desc, "")
	if runes := []rune(desc); len(runes) > 200 {
		desc = string(runes[:197]) + "..."
	}
	return desc
}
