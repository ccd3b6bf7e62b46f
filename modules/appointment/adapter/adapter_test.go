package adapter

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appointment-sync/core/utils"
	"appointment-sync/modules/appointment/entity"
	"appointment-sync/modules/appointment/store"
)

var fixedNow = time.Date(2099, 1, 1, 8, 0, 0, 0, time.Local)

func fixedClock() time.Time { return fixedNow }

func TestForStore(t *testing.T) {
	for _, kind := range entity.StoreKinds() {
		assert.Equal(t, kind, ForStore(kind).Kind())
	}
	assert.Panics(t, func() { ForStore(entity.StoreKind("bogus")) })
}

func TestScheduleToUnified(t *testing.T) {
	a := NewScheduleAdapter()

	u, err := a.ToUnified(store.RawRecord{
		"id":          float64(12),
		"date":        "2099-01-01",
		"time":        "09:00",
		"description": "Checkup",
		"timestamp":   "2098-12-30T10:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "12", u.ID)
	assert.Equal(t, "2099-01-01", u.Date)
	assert.Equal(t, "09:00", u.Time)
	assert.Equal(t, "Checkup", u.Description)
	assert.Equal(t, entity.SourceLocal, u.Source)
	assert.Equal(t, entity.StatusConfirmed, u.Status)
	assert.Equal(t, "2098-12-30T10:00:00", u.CreatedAt)
}

func TestScheduleToUnifiedBadField(t *testing.T) {
	a := NewScheduleAdapter()
	_, err := a.ToUnified(store.RawRecord{"id": 1, "date": true})
	assert.Error(t, err)
}

func TestScheduleFromUnified(t *testing.T) {
	a := &ScheduleAdapter{now: fixedClock}
	raw, err := a.FromUnified(entity.UnifiedAppointment{
		ID:          "UNIFIED_20990101080000_abc1234",
		Date:        "2099-01-01",
		Time:        "09:00",
		Description: "Checkup",
	})
	require.NoError(t, err)

	assert.Equal(t, utils.NumericID("UNIFIED_20990101080000_abc1234"), raw["id"])
	assert.Equal(t, "2099-01-01", raw["date"])
	assert.Equal(t, "09:00", raw["time"])
	assert.Equal(t, "Checkup", raw["description"])
	assert.Equal(t, "2099-01-01T08:00:00", raw["timestamp"], "missing created_at falls back to now")
}

func TestScheduleNativeID(t *testing.T) {
	a := NewScheduleAdapter()
	assert.Equal(t, "42", a.NativeID("42"), "numeric ids pass through")

	hashed := a.NativeID("UNIFIED_x")
	assert.Equal(t, strconv.Itoa(utils.NumericID("UNIFIED_x")), hashed)
	assert.NotEqual(t, hashed, a.NativeID("UNIFIED_y"), "distinct ids keep distinct native forms")
}

func TestCalendarToUnifiedTruncatesStart(t *testing.T) {
	a := NewCalendarAdapter()

	u, err := a.ToUnified(store.RawRecord{
		"id":          float64(7),
		"start":       "2099-01-01T09:00:00",
		"end":         "2099-01-01T10:00:00",
		"description": "Checkup",
		"created_at":  "2098-12-30T10:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "2099-01-01", u.Date)
	assert.Equal(t, "09:00", u.Time)
	assert.Equal(t, entity.SourceCalendar, u.Source)
}

func TestCalendarToUnifiedShortStart(t *testing.T) {
	a := NewCalendarAdapter()

	u, err := a.ToUnified(store.RawRecord{"id": float64(7), "start": "2099-01-01"})
	require.NoError(t, err)
	assert.Empty(t, u.Date)
	assert.Empty(t, u.Time)
}

func TestCalendarDescriptionFallsBackToTitle(t *testing.T) {
	a := NewCalendarAdapter()

	u, err := a.ToUnified(store.RawRecord{
		"id":    float64(7),
		"start": "2099-01-01T09:00:00",
		"title": "Checkup",
	})
	require.NoError(t, err)
	assert.Equal(t, "Checkup", u.Description)
}

func TestCalendarFromUnified(t *testing.T) {
	a := &CalendarAdapter{now: fixedClock}

	raw, err := a.FromUnified(entity.UnifiedAppointment{
		ID:          "UNIFIED_20990101080000_abc1234",
		Date:        "2099-01-01",
		Time:        "09:00",
		Description: "Checkup",
	})
	require.NoError(t, err)

	assert.Equal(t, "2099-01-01T09:00:00", raw["start"])
	assert.Equal(t, "2099-01-01T10:00:00", raw["end"], "end is start plus the default duration")
	assert.Equal(t, "Checkup", raw["title"])
	assert.Equal(t, "Checkup", raw["description"])
	assert.Equal(t, "confirmed", raw["status"])
	assert.Equal(t, "voice_automation", raw["calendar_type"])
}

func TestCalendarFromUnifiedBadDate(t *testing.T) {
	a := NewCalendarAdapter()
	_, err := a.FromUnified(entity.UnifiedAppointment{Date: "someday", Time: "noonish"})
	assert.Error(t, err)
}

func TestAPIToUnified(t *testing.T) {
	a := NewAPIAdapter()

	u, err := a.ToUnified(store.RawRecord{
		"id":                "UNIFIED_20990101080000_abc1234",
		"date":              "2099-01-01",
		"time":              "09:00",
		"description":       "Checkup",
		"patient_name":      "Ada",
		"contact_info":      "ada@example.com",
		"status":            "confirmed",
		"booking_timestamp": "2098-12-30T10:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "UNIFIED_20990101080000_abc1234", u.ID)
	assert.Equal(t, u.ID, u.ExternalID)
	assert.Equal(t, "Ada", u.PatientName)
	assert.Equal(t, entity.SourceAPI, u.Source)
}

func TestAPIFromUnifiedDefaults(t *testing.T) {
	a := &APIAdapter{now: fixedClock}

	raw, err := a.FromUnified(entity.UnifiedAppointment{
		ID:          "UNIFIED_20990101080000_abc1234",
		Date:        "2099-01-01",
		Time:        "09:00",
		Description: "Checkup",
	})
	require.NoError(t, err)

	assert.Equal(t, "UNIFIED_20990101080000_abc1234", raw["id"], "api ids pass through unchanged")
	assert.Equal(t, "Voice User", raw["patient_name"])
	assert.Equal(t, "voice@example.com", raw["contact_info"])
	assert.True(t, strings.HasPrefix(raw["confirmation_code"].(string), "CONF_"))

	again, err := a.FromUnified(entity.UnifiedAppointment{ID: raw["id"].(string), Date: "2099-01-01", Time: "09:00"})
	require.NoError(t, err)
	assert.NotEqual(t, raw["confirmation_code"], again["confirmation_code"], "each conversion mints a fresh code")
}

// Conversion injects synthetic fields, so only the semantic triple is
// expected to survive a round trip.
func TestRoundTripKeepsSemanticTriple(t *testing.T) {
	in := entity.UnifiedAppointment{
		ID:          "UNIFIED_20990101080000_abc1234",
		Date:        "2099-01-01",
		Time:        "09:00",
		Description: "Checkup",
		CreatedAt:   "2099-01-01T08:00:00",
	}

	for _, kind := range entity.StoreKinds() {
		a := ForStore(kind)
		raw, err := a.FromUnified(in)
		require.NoError(t, err, kind)
		out, err := a.ToUnified(raw)
		require.NoError(t, err, kind)

		assert.Equal(t, in.Key(), out.Key(), kind)
		assert.Equal(t, kind.Source(), out.Source, kind)
	}
}
