package service

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2099, 1, 1, 8, 0, 0, 0, time.Local) // a Thursday

func TestNormalizeDate(t *testing.T) {
	w := newDateParser()

	assert.Equal(t, "2099-03-15", normalizeDate(w, "2099-03-15", testNow), "well-formed dates pass through")
	assert.Equal(t, "2099-01-01", normalizeDate(w, "today", testNow))
	assert.Equal(t, "2099-01-02", normalizeDate(w, "Tomorrow", testNow))
	assert.Equal(t, "2099-01-08", normalizeDate(w, "next week", testNow))
	assert.Equal(t, "2099-01-31", normalizeDate(w, "next month", testNow))
	assert.Empty(t, normalizeDate(w, "whenever works", testNow))
	assert.Empty(t, normalizeDate(w, "", testNow))
}

func TestNormalizeDateWeekday(t *testing.T) {
	w := newDateParser()

	got := normalizeDate(w, "next tuesday", testNow)
	require.NotEmpty(t, got)

	resolved, err := time.ParseInLocation("2006-01-02", got, time.Local)
	require.NoError(t, err)
	assert.Equal(t, time.Tuesday, resolved.Weekday())
	assert.True(t, resolved.After(testNow))
}

func TestNormalizeTime(t *testing.T) {
	cases := map[string]string{
		"2 pm":              "14:00",
		"2PM":               "14:00",
		"12 pm":             "12:00",
		"12 am":             "00:00",
		"9 AM":              "09:00",
		"in the morning":    "09:00",
		"afternoon":         "14:00",
		"evening":           "18:00",
		"at night":          "20:00",
		"14:30":             "14:30",
		"9:05":              "09:05",
		"sometime or other": "",
		"":                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeTime(in), "input %q", in)
	}
}

func TestSanitizeDescription(t *testing.T) {
	assert.Equal(t, "team sync about Q3", sanitizeDescription("  team   sync\tabout Q3 "))
	assert.Equal(t, "say hello now", sanitizeDescription(`say "hello" <now>`))
	assert.Empty(t, sanitizeDescription(""))

	long := sanitizeDescription(strings.Repeat("a", 300))
	assert.Len(t, long, 200)
	assert.True(t, strings.HasSuffix(long, "..."))
}

func TestSanitizeDescriptionMultiByte(t *testing.T) {
	long := sanitizeDescription(strings.Repeat("é", 250))
	assert.True(t, utf8.ValidString(long), "truncation must not split a rune")
	assert.Equal(t, 200, utf8.RuneCountInString(long))
	assert.True(t, strings.HasSuffix(long, "..."))

	short := strings.Repeat("é", 150) // 300 bytes but only 150 runes, under the cap
	assert.Equal(t, short, sanitizeDescription(short))
}
