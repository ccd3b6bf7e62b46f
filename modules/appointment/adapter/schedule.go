package adapter

import (
	"strconv"
	"time"

	"appointment-sync/core/constants"
	"appointment-sync/core/utils"
	"appointment-sync/modules/appointment/entity"
	"appointment-sync/modules/appointment/store"
)

// ScheduleAdapter maps the local schedule store's records. The store keeps
// integer ids and a flat date/time/description/timestamp shape.
type ScheduleAdapter struct {
	now func() time.Time
}

func NewScheduleAdapter() *ScheduleAdapter {
	return &ScheduleAdapter{now: time.Now}
}

func (a *ScheduleAdapter) Kind() entity.StoreKind {
	return entity.StoreSchedule
}

func (a *ScheduleAdapter) ToUnified(raw store.RawRecord) (entity.UnifiedAppointment, error) {
	id, err := idVal(raw, "id")
	if err != nil {
		return entity.UnifiedAppointment{}, err
	}
	date, err := stringVal(raw, "date")
	if err != nil {
		return entity.UnifiedAppointment{}, err
	}
	tm, err := stringVal(raw, "time")
	if err != nil {
		return entity.UnifiedAppointment{}, err
	}
	description, err := stringVal(raw, "description")
	if err != nil {
		return entity.UnifiedAppointment{}, err
	}
	createdAt, err := stringVal(raw, "timestamp")
	if err != nil {
		return entity.UnifiedAppointment{}, err
	}

	return entity.UnifiedAppointment{
		ID:          id,
		Date:        date,
		Time:        tm,
		Description: description,
		Status:      entity.StatusConfirmed,
		Source:      entity.SourceLocal,
		CreatedAt:   createdAt,
	}, nil
}

func (a *ScheduleAdapter) FromUnified(u entity.UnifiedAppointment) (store.RawRecord, error) {
	return store.RawRecord{
		"id":          utils.NumericID(u.ID),
		"date":        u.Date,
		"time":        u.Time,
		"description": u.Description,
		"timestamp":   coalesce(u.CreatedAt, a.now().Format(constants.TimestampLayout)),
	}, nil
}

func (a *ScheduleAdapter) NativeID(id string) string {
	return strconv.Itoa(utils.NumericID(id))
}
