package entity

import (
	"strings"
	"time"

	"appointment-sync/core/constants"
)

// Status represents the lifecycle state of an appointment.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

// Source records which store a unified appointment was read from. It is
// provenance metadata, not an ownership lock.
type Source string

const (
	SourceLocal    Source = "local"
	SourceCalendar Source = "calendar"
	SourceAPI      Source = "api"
)

// StoreKind is the closed set of record stores an appointment is mirrored
// across. Adapters and the synchronizer match it exhaustively; an unknown
// kind is a programming defect, not a runtime condition.
type StoreKind string

const (
	StoreSchedule StoreKind = "schedules"
	StoreCalendar StoreKind = "calendar"
	StoreAPI      StoreKind = "api"
)

// StoreKinds returns every store kind in fan-out order.
func StoreKinds() []StoreKind {
	return []StoreKind{StoreSchedule, StoreCalendar, StoreAPI}
}

// Source maps a store kind to the provenance tag its records carry.
func (k StoreKind) Source() Source {
	switch k {
	case StoreSchedule:
		return SourceLocal
	case StoreCalendar:
		return SourceCalendar
	case StoreAPI:
		return SourceAPI
	}
	panic("unknown store kind: " + string(k))
}

// UnifiedAppointment is the canonical, store-agnostic representation of a
// booking. It is materialized transiently from a raw store record and has no
// persisted existence of its own.
type UnifiedAppointment struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
	PatientName string `json:"patient_name,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`
	Status      Status `json:"status"`
	Source      Source `json:"source"`
	ExternalID  string `json:"external_id,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// Key returns the identity/conflict key: the normalized (date, time,
// description) triple. Records with equal keys are treated as the same
// logical appointment regardless of id or source.
func (a UnifiedAppointment) Key() string {
	return normalizeKeyPart(a.Date) + "_" + normalizeKeyPart(a.Time) + "_" + normalizeKeyPart(a.Description)
}

// normalizeKeyPart lower-cases, trims, and collapses inner whitespace.
func normalizeKeyPart(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// StartsAt parses the combined date and time as a local datetime.
func (a UnifiedAppointment) StartsAt() (time.Time, error) {
	return time.ParseInLocation(constants.DateTimeLayout, a.Date+" "+a.Time, time.Local)
}
