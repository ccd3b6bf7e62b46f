package adapter

import (
	"fmt"
	"strconv"
	"time"

	"appointment-sync/core/constants"
	"appointment-sync/core/utils"
	"appointment-sync/modules/appointment/entity"
	"appointment-sync/modules/appointment/store"
)

// CalendarAdapter maps the calendar-event store. Events carry a combined
// start/end timestamp pair; the unified date and time come from truncating
// the start, and the end is always recomputed as start plus the default
// duration rather than preserved from any source value.
type CalendarAdapter struct {
	now func() time.Time
}

func NewCalendarAdapter() *CalendarAdapter {
	return &CalendarAdapter{now: time.Now}
}

func (a *CalendarAdapter) Kind() entity.StoreKind {
	return entity.StoreCalendar
}

func (a *CalendarAdapter) ToUnified(raw store.RawRecord) (entity.UnifiedAppointment, error) {
	id, err := idVal(raw, "id")
	if err != nil {
		return entity.UnifiedAppointment{}, err
	}
	start, err := stringVal(raw, "start")
	if err != nil {
		return entity.UnifiedAppointment{}, err
	}

	// A missing or truncated start yields empty date/time, not an error.
	var date, tm string
	if len(start) >= 16 {
		date = start[:10]
		tm = start[11:16]
	}

	description, err := stringVal(raw, "description")
	if err != nil {
		return entity.UnifiedAppointment{}, err
	}
	if description == "" {
		if description, err = stringVal(raw, "title"); err != nil {
			return entity.UnifiedAppointment{}, err
		}
	}
	createdAt, err := stringVal(raw, "created_at")
	if err != nil {
		return entity.UnifiedAppointment{}, err
	}

	return entity.UnifiedAppointment{
		ID:          id,
		Date:        date,
		Time:        tm,
		Description: description,
		Status:      entity.StatusConfirmed,
		Source:      entity.SourceCalendar,
		CreatedAt:   createdAt,
	}, nil
}

func (a *CalendarAdapter) FromUnified(u entity.UnifiedAppointment) (store.RawRecord, error) {
	startTime, err := u.StartsAt()
	if err != nil {
		return nil, fmt.Errorf("cannot compute event window from %q %q: %w", u.Date, u.Time, err)
	}
	start := startTime.Format(constants.TimestampLayout)
	end := startTime.Add(constants.DefaultAppointmentDuration).Format(constants.TimestampLayout)

	return store.RawRecord{
		"id":            utils.NumericID(u.ID),
		"title":         u.Description,
		"start":         start,
		"end":           end,
		"description":   u.Description,
		"status":        string(statusOrConfirmed(u.Status)),
		"created_at":    coalesce(u.CreatedAt, a.now().Format(constants.TimestampLayout)),
		"calendar_type": constants.CalendarTypeVoiceAutomation,
	}, nil
}

func (a *CalendarAdapter) NativeID(id string) string {
	return strconv.Itoa(utils.NumericID(id))
}

func statusOrConfirmed(s entity.Status) entity.Status {
	if s == "" {
		return entity.StatusConfirmed
	}
	return s
}
