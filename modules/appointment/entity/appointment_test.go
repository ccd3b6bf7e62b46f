package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedAppointmentKey(t *testing.T) {
	a := UnifiedAppointment{Date: "2099-01-01", Time: "09:00", Description: "Annual Checkup"}
	b := UnifiedAppointment{
		ID:          "999",
		Date:        "  2099-01-01 ",
		Time:        "09:00",
		Description: "annual   checkup",
		Source:      SourceCalendar,
	}

	assert.Equal(t, "2099-01-01_09:00_annual checkup", a.Key())
	assert.Equal(t, a.Key(), b.Key(), "id and source must not affect identity")

	c := UnifiedAppointment{Date: "2099-01-01", Time: "10:00", Description: "Annual Checkup"}
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestKeyEmptyFields(t *testing.T) {
	assert.Equal(t, "__", UnifiedAppointment{}.Key())
}

func TestStoreKindSource(t *testing.T) {
	assert.Equal(t, SourceLocal, StoreSchedule.Source())
	assert.Equal(t, SourceCalendar, StoreCalendar.Source())
	assert.Equal(t, SourceAPI, StoreAPI.Source())

	assert.Panics(t, func() {
		StoreKind("bogus").Source()
	})
}

func TestStoreKindsOrder(t *testing.T) {
	assert.Equal(t, []StoreKind{StoreSchedule, StoreCalendar, StoreAPI}, StoreKinds())
}

func TestStartsAt(t *testing.T) {
	a := UnifiedAppointment{Date: "2099-01-01", Time: "09:30"}
	ts, err := a.StartsAt()
	require.NoError(t, err)
	assert.Equal(t, 2099, ts.Year())
	assert.Equal(t, 9, ts.Hour())
	assert.Equal(t, 30, ts.Minute())

	_, err = UnifiedAppointment{Date: "not-a-date", Time: "09:30"}.StartsAt()
	assert.Error(t, err)
}
