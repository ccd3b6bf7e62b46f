package adapter

import (
	"time"

	"appointment-sync/core/constants"
	"appointment-sync/core/utils"
	"appointment-sync/modules/appointment/entity"
	"appointment-sync/modules/appointment/store"
)

// APIAdapter maps the externally-facing api-booking store, the only store
// whose records carry patient details. Its ids pass through as strings.
type APIAdapter struct {
	now func() time.Time
}

func NewAPIAdapter() *APIAdapter {
	return &APIAdapter{now: time.Now}
}

func (a *APIAdapter) Kind() entity.StoreKind {
	return entity.StoreAPI
}

func (a *APIAdapter) ToUnified(raw store.RawRecord) (entity.UnifiedAppointment, error) {
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
	patientName, err := stringVal(raw, "patient_name")
	if err != nil {
		return entity.UnifiedAppointment{}, err
	}
	contactInfo, err := stringVal(raw, "contact_info")
	if err != nil {
		return entity.UnifiedAppointment{}, err
	}
	status, err := stringVal(raw, "status")
	if err != nil {
		return entity.UnifiedAppointment{}, err
	}
	createdAt, err := stringVal(raw, "booking_timestamp")
	if err != nil {
		return entity.UnifiedAppointment{}, err
	}

	return entity.UnifiedAppointment{
		ID:          id,
		Date:        date,
		Time:        tm,
		Description: description,
		PatientName: patientName,
		ContactInfo: contactInfo,
		Status:      statusOrConfirmed(entity.Status(status)),
		Source:      entity.SourceAPI,
		ExternalID:  id,
		CreatedAt:   createdAt,
	}, nil
}

func (a *APIAdapter) FromUnified(u entity.UnifiedAppointment) (store.RawRecord, error) {
	return store.RawRecord{
		"id":                u.ID,
		"date":              u.Date,
		"time":              u.Time,
		"description":       u.Description,
		"patient_name":      coalesce(u.PatientName, constants.DefaultPatientName),
		"contact_info":      coalesce(u.ContactInfo, constants.DefaultContactInfo),
		"status":            string(statusOrConfirmed(u.Status)),
		"booking_timestamp": coalesce(u.CreatedAt, a.now().Format(constants.TimestampLayout)),
		"confirmation_code": utils.GenerateConfirmationCode(a.now()),
	}, nil
}

func (a *APIAdapter) NativeID(id string) string {
	return id
}
