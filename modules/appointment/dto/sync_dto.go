package dto

import (
	"appointment-sync/modules/appointment/entity"
	"appointment-sync/modules/appointment/store"
)

// BookingRequest is the synchronizer's input for a fan-out write. Patient
// fields stay empty here; store defaults are injected at conversion time.
type BookingRequest struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
	PatientName string `json:"patient_name,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`
}

// StoreStatusMap carries one outcome per store. Mutating operations always
// return a complete map; a failure in one store never hides the others.
type StoreStatusMap map[entity.StoreKind]string

// AddResult reports a fan-out write: the generation id shared by all three
// derived records, the confirmation code minted by the api store conversion,
// and the per-store outcomes.
type AddResult struct {
	ID               string         `json:"id"`
	ConfirmationCode string         `json:"confirmation_code,omitempty"`
	Statuses         StoreStatusMap `json:"statuses"`
}

// ConflictGroup is a set of records from the unified view sharing one
// identity key: the same slot and description present in several stores, or
// duplicated within one.
type ConflictGroup struct {
	Key     string                      `json:"key"`
	Members []entity.UnifiedAppointment `json:"members"`
}

type SyncReport struct {
	TotalUniqueAppointments int             `json:"total_unique_appointments"`
	Conflicts               []ConflictGroup `json:"conflicts"`
	Status                  string          `json:"status"`
}

// ExportSnapshot is a read-only dump of the three raw collections plus the
// unified view, for backup and debugging.
type ExportSnapshot struct {
	Schedules           []store.RawRecord           `json:"schedules"`
	CalendarEvents      []store.RawRecord           `json:"calendarEvents"`
	APIAppointments     []store.RawRecord           `json:"apiAppointments"`
	UnifiedAppointments []entity.UnifiedAppointment `json:"unifiedAppointments"`
	ExportTimestamp     string                      `json:"exportTimestamp"`
}
