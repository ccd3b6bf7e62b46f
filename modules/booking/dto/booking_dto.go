package dto

import (
	appointmentdto "appointment-sync/modules/appointment/dto"
	"appointment-sync/modules/appointment/entity"
)

// BookAppointmentRequest is the public booking payload.
type BookAppointmentRequest struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
	PatientName string `json:"patient_name,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`
}

type BookAppointmentResponse struct {
	Success          bool                          `json:"success"`
	AppointmentID    string                        `json:"appointment_id"`
	ConfirmationCode string                        `json:"confirmation_code,omitempty"`
	StoreResults     appointmentdto.StoreStatusMap `json:"store_results"`
	Message          string                        `json:"message"`
}

type AppointmentListResponse struct {
	Success      bool                        `json:"success"`
	Appointments []entity.UnifiedAppointment `json:"appointments"`
	TotalCount   int                         `json:"total_count"`
}

type CancelAppointmentResponse struct {
	Success       bool                          `json:"success"`
	AppointmentID string                        `json:"appointment_id"`
	StoreResults  appointmentdto.StoreStatusMap `json:"store_results"`
	Message       string                        `json:"message"`
}

type HealthResponse struct {
	Status            string `json:"status"`
	Timestamp         string `json:"timestamp"`
	TotalAppointments int    `json:"total_appointments"`
	CacheStatus       string `json:"cache_status"`
	APIVersion        string `json:"api_version"`
}
