package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"appointment-sync/core/constants"
	"appointment-sync/core/logger"
	"appointment-sync/core/utils"
	"appointment-sync/modules/appointment/adapter"
	"appointment-sync/modules/appointment/dto"
	"appointment-sync/modules/appointment/entity"
	"appointment-sync/modules/appointment/store"
)

// Per-store status values returned by mutating operations.
const (
	StatusSuccess  = "success"
	StatusRemoved  = "removed"
	StatusNotFound = "not_found"
)

type binding struct {
	kind     entity.StoreKind
	accessor store.Accessor
	adapter  adapter.Adapter
}

// SyncService is the synchronizer: it fans writes out to the three record
// stores through their format adapters, fans reads back in to the unified
// view, and reports cross-store inconsistency. There is no cross-store
// transaction; correctness is best-effort and observable only through the
// per-store status maps. It detects conflicts, it does not resolve them.
type SyncService struct {
	bindings []binding
	now      func() time.Time
}

func NewSyncService(schedule, calendar, api store.Accessor) *SyncService {
	return &SyncService{
		bindings: []binding{
			{kind: entity.StoreSchedule, accessor: schedule, adapter: adapter.ForStore(entity.StoreSchedule)},
			{kind: entity.StoreCalendar, accessor: calendar, adapter: adapter.ForStore(entity.StoreCalendar)},
			{kind: entity.StoreAPI, accessor: api, adapter: adapter.ForStore(entity.StoreAPI)},
		},
		now: time.Now,
	}
}

// GetAll reads every store and converts each raw record to the unified
// model. A record that fails conversion is skipped with a warning; the read
// itself never fails. Ordering is store fan-out order, then record order
// within each store.
func (s *SyncService) GetAll(ctx context.Context) []entity.UnifiedAppointment {
	all := make([]entity.UnifiedAppointment, 0)
	for _, b := range s.bindings {
		for _, raw := range b.accessor.List() {
			unified, err := b.adapter.ToUnified(raw)
			if err != nil {
				logger.Warn("SyncService:GetAll:SkippingRecord", "store", b.kind, "error", err)
				continue
			}
			all = append(all, unified)
		}
	}
	return all
}

// AddToAll assigns one generation id to the request, then writes the derived
// record to each store independently and sequentially. A failed store is
// recorded in the status map and never blocks the remaining stores.
func (s *SyncService) AddToAll(ctx context.Context, req dto.BookingRequest) *dto.AddResult {
	now := s.now()
	unified := entity.UnifiedAppointment{
		ID:          utils.GenerateGenerationID(now),
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
		PatientName: req.PatientName,
		ContactInfo: req.ContactInfo,
		Status:      entity.StatusConfirmed,
		CreatedAt:   now.Format(constants.TimestampLayout),
	}

	logger.Info("SyncService:AddToAll:Start", "id", unified.ID, "date", req.Date, "time", req.Time)

	result := &dto.AddResult{
		ID:       unified.ID,
		Statuses: make(dto.StoreStatusMap, len(s.bindings)),
	}
	for _, b := range s.bindings {
		raw, err := b.adapter.FromUnified(unified)
		if err != nil {
			result.Statuses[b.kind] = "error: " + err.Error()
			logger.Error("SyncService:AddToAll:ConvertError:", err, "store", b.kind)
			continue
		}
		if err := b.accessor.Append(raw); err != nil {
			result.Statuses[b.kind] = "error: " + err.Error()
			logger.Error("SyncService:AddToAll:WriteError:", err, "store", b.kind)
			continue
		}
		result.Statuses[b.kind] = StatusSuccess
		if b.kind == entity.StoreAPI {
			if code, ok := raw["confirmation_code"].(string); ok {
				result.ConfirmationCode = code
			}
		}
	}
	return result
}

// RemoveFromAll removes the record matching the given id from each store
// independently. The id is rendered into each store's native id form first,
// so cancelling by generation id reaches the derived record in every store.
// Statuses are per-store; a miss in one store says nothing about the others.
func (s *SyncService) RemoveFromAll(ctx context.Context, id string) dto.StoreStatusMap {
	logger.Info("SyncService:RemoveFromAll:Start", "id", id)

	statuses := make(dto.StoreStatusMap, len(s.bindings))
	for _, b := range s.bindings {
		native := b.adapter.NativeID(id)
		records := b.accessor.List()

		kept := make([]store.RawRecord, 0, len(records))
		for _, raw := range records {
			if recordID(raw) != native {
				kept = append(kept, raw)
			}
		}
		if len(kept) == len(records) {
			statuses[b.kind] = StatusNotFound
			continue
		}
		if err := b.accessor.ReplaceAll(kept); err != nil {
			statuses[b.kind] = "error: " + err.Error()
			logger.Error("SyncService:RemoveFromAll:WriteError:", err, "store", b.kind)
			continue
		}
		statuses[b.kind] = StatusRemoved
	}
	return statuses
}

// SyncAll groups the unified view by identity key and reports every group
// with more than one member as a conflict. Read-only; resolution belongs to
// the caller.
func (s *SyncService) SyncAll(ctx context.Context) *dto.SyncReport {
	groups := make(map[string][]entity.UnifiedAppointment)
	var order []string
	for _, appt := range s.GetAll(ctx) {
		key := appt.Key()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], appt)
	}

	report := &dto.SyncReport{
		TotalUniqueAppointments: len(groups),
		Conflicts:               []dto.ConflictGroup{},
		Status:                  "completed",
	}
	for _, key := range order {
		if members := groups[key]; len(members) > 1 {
			report.Conflicts = append(report.Conflicts, dto.ConflictGroup{Key: key, Members: members})
		}
	}

	logger.Info("SyncService:SyncAll:Done",
		"unique", report.TotalUniqueAppointments,
		"conflicts", len(report.Conflicts),
	)
	return report
}

// Summary renders the unified view as a human-readable listing, sorted
// ascending by date then time.
func (s *SyncService) Summary(ctx context.Context) string {
	appointments := s.GetAll(ctx)
	if len(appointments) == 0 {
		return "No appointments found across all systems."
	}

	sort.SliceStable(appointments, func(i, j int) bool {
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date < appointments[j].Date
		}
		return appointments[i].Time < appointments[j].Time
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d appointments across all systems:\n\n", len(appointments))
	for _, appt := range appointments {
		fmt.Fprintf(&sb, "- %s on %s at %s (Source: %s)\n", appt.Description, appt.Date, appt.Time, appt.Source)
	}
	return sb.String()
}

// ExportAll snapshots the three raw collections plus the unified view.
// It performs no writes.
func (s *SyncService) ExportAll(ctx context.Context) *dto.ExportSnapshot {
	return &dto.ExportSnapshot{
		Schedules:           s.bindings[0].accessor.List(),
		CalendarEvents:      s.bindings[1].accessor.List(),
		APIAppointments:     s.bindings[2].accessor.List(),
		UnifiedAppointments: s.GetAll(ctx),
		ExportTimestamp:     s.now().Format(constants.TimestampLayout),
	}
}

// recordID renders a raw record's id field as a string for removal matching.
func recordID(raw store.RawRecord) string {
	switch id := raw["id"].(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	}
	return ""
}
