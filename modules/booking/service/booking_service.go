package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"appointment-sync/core/cache"
	"appointment-sync/core/constants"
	"appointment-sync/core/errors"
	"appointment-sync/core/logger"
	"appointment-sync/core/queue"
	appointmentdto "appointment-sync/modules/appointment/dto"
	"appointment-sync/modules/appointment/entity"
	appointmentservice "appointment-sync/modules/appointment/service"
	"appointment-sync/modules/booking/dto"
)

const apiVersion = "1.0.0"

type BookingService interface {
	Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.BookAppointmentResponse, *errors.AppError)
	List(ctx context.Context, dateFilter string) (*dto.AppointmentListResponse, *errors.AppError)
	GetByID(ctx context.Context, id string) (*entity.UnifiedAppointment, *errors.AppError)
	Cancel(ctx context.Context, id string) (*dto.CancelAppointmentResponse, *errors.AppError)
	Health(ctx context.Context) *dto.HealthResponse
}

type bookingService struct {
	syncService *appointmentservice.SyncService
	cache       cache.Cache
	queue       *queue.Client // nil when Redis is not configured
	now         func() time.Time
}

func NewBookingService(syncService *appointmentservice.SyncService, c cache.Cache, q *queue.Client) BookingService {
	return &bookingService{
		syncService: syncService,
		cache:       c,
		queue:       q,
		now:         time.Now,
	}
}

// Book validates the request, rejects double-booked slots, then mirrors the
// appointment into all three stores. Partial store failures surface in
// StoreResults rather than failing the booking outright.
func (s *bookingService) Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.BookAppointmentResponse, *errors.AppError) {
	logger.Info("BookingService:Book:Start", "date", req.Date, "time", req.Time)

	if appErr := s.validateBooking(req); appErr != nil {
		return nil, appErr
	}

	// Slot conflict check against the unified view: the same (date, time)
	// already present in any store blocks the booking.
	for _, appt := range s.syncService.GetAll(ctx) {
		if appt.Date == req.Date && appt.Time == req.Time {
			logger.Warn("BookingService:Book:SlotTaken", "date", req.Date, "time", req.Time)
			return nil, errors.NewAppError(errors.ErrAlreadyExists,
				"appointment slot "+req.Date+" "+req.Time+" is already booked", nil)
		}
	}

	result := s.syncService.AddToAll(ctx, appointmentdto.BookingRequest{
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
		PatientName: req.PatientName,
		ContactInfo: req.ContactInfo,
	})

	s.afterMutation(ctx)

	return &dto.BookAppointmentResponse{
		Success:          true,
		AppointmentID:    result.ID,
		ConfirmationCode: result.ConfirmationCode,
		StoreResults:     result.Statuses,
		Message:          "Appointment successfully booked",
	}, nil
}

func (s *bookingService) validateBooking(req *dto.BookAppointmentRequest) *errors.AppError {
	startsAt, err := time.ParseInLocation(constants.DateTimeLayout, req.Date+" "+req.Time, time.Local)
	if err != nil {
		return errors.NewAppError(errors.ErrInvalidRequestData,
			"invalid date or time format, use YYYY-MM-DD and HH:MM", nil)
	}
	if startsAt.Before(s.now()) {
		return errors.NewAppError(errors.ErrInvalidRequestData,
			"cannot book appointments in the past", nil)
	}
	if len(strings.TrimSpace(req.Description)) < 3 {
		return errors.NewAppError(errors.ErrInvalidRequestData,
			"description must be at least 3 characters", nil)
	}
	return nil
}

// List returns the unified view, optionally narrowed by a relative filter
// (today, tomorrow, week, month) or a date substring. The unfiltered listing
// is served from cache when fresh.
func (s *bookingService) List(ctx context.Context, dateFilter string) (*dto.AppointmentListResponse, *errors.AppError) {
	appointments := s.listUnified(ctx)

	if dateFilter != "" {
		appointments = s.filterByDate(appointments, dateFilter)
	}

	return &dto.AppointmentListResponse{
		Success:      true,
		Appointments: appointments,
		TotalCount:   len(appointments),
	}, nil
}

func (s *bookingService) listUnified(ctx context.Context) []entity.UnifiedAppointment {
	if payload, ok := s.cache.GetUnifiedListing(ctx); ok {
		var cached []entity.UnifiedAppointment
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached
		}
		logger.Warn("BookingService:listUnified:BadCachePayload")
	}

	appointments := s.syncService.GetAll(ctx)
	if payload, err := json.Marshal(appointments); err == nil {
		if err := s.cache.SetUnifiedListing(ctx, payload); err != nil {
			logger.Warn("BookingService:listUnified:CacheSetError:", err)
		}
	}
	return appointments
}

func (s *bookingService) filterByDate(appointments []entity.UnifiedAppointment, dateFilter string) []entity.UnifiedAppointment {
	today := s.now()
	matched := make([]entity.UnifiedAppointment, 0, len(appointments))

	for _, appt := range appointments {
		date, err := time.ParseInLocation(constants.DateLayout, appt.Date, time.Local)
		switch dateFilter {
		case "today":
			if err == nil && sameDay(date, today) {
				matched = append(matched, appt)
			}
		case "tomorrow":
			if err == nil && sameDay(date, today.AddDate(0, 0, 1)) {
				matched = append(matched, appt)
			}
		case "week":
			if err == nil && !date.Before(startOfDay(today)) && !date.After(today.AddDate(0, 0, 7)) {
				matched = append(matched, appt)
			}
		case "month":
			if err == nil && date.Month() == today.Month() && date.Year() == today.Year() {
				matched = append(matched, appt)
			}
		default:
			if strings.Contains(appt.Date, dateFilter) {
				matched = append(matched, appt)
			}
		}
	}
	return matched
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*entity.UnifiedAppointment, *errors.AppError) {
	for _, appt := range s.syncService.GetAll(ctx) {
		if appt.ID == id || appt.ExternalID == id {
			return &appt, nil
		}
	}
	return nil, errors.NewAppError(errors.ErrNotFound, "appointment with ID "+id+" not found", nil)
}

// Cancel removes the appointment from every store it exists in. NotFound is
// returned only when no store held a matching record.
func (s *bookingService) Cancel(ctx context.Context, id string) (*dto.CancelAppointmentResponse, *errors.AppError) {
	logger.Info("BookingService:Cancel:Start", "id", id)

	statuses := s.syncService.RemoveFromAll(ctx, id)

	removed := false
	for _, status := range statuses {
		if status == appointmentservice.StatusRemoved {
			removed = true
			break
		}
	}
	if !removed {
		return nil, errors.NewAppError(errors.ErrNotFound, "appointment with ID "+id+" not found", statuses)
	}

	s.afterMutation(ctx)

	return &dto.CancelAppointmentResponse{
		Success:       true,
		AppointmentID: id,
		StoreResults:  statuses,
		Message:       "Appointment successfully canceled",
	}, nil
}

func (s *bookingService) Health(ctx context.Context) *dto.HealthResponse {
	cacheStatus := "ok"
	if err := s.cache.Ping(ctx); err != nil {
		logger.Warn("BookingService:Health:CachePingError:", err)
		cacheStatus = "unavailable"
	}
	return &dto.HealthResponse{
		Status:            "healthy",
		Timestamp:         s.now().Format(constants.TimestampLayout),
		TotalAppointments: len(s.syncService.GetAll(ctx)),
		CacheStatus:       cacheStatus,
		APIVersion:        apiVersion,
	}
}

// afterMutation drops the cached listing and schedules a backup snapshot.
func (s *bookingService) afterMutation(ctx context.Context) {
	if err := s.cache.InvalidateUnifiedListing(ctx); err != nil {
		logger.Warn("BookingService:afterMutation:CacheInvalidateError:", err)
	}
	if s.queue != nil {
		_ = s.queue.EnqueueExportUpload(ctx)
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
