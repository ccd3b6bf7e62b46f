// Package adapter maps between each store's native record schema and the
// unified appointment model. Conversion is deliberately not round-trip
// stable: every FromUnified injects store-specific synthetic fields
// (confirmation codes, calendar tags, computed end times), so only the
// semantic (date, time, description) triple survives a round trip intact.
package adapter

import (
	"fmt"
	"strconv"

	"appointment-sync/modules/appointment/entity"
	"appointment-sync/modules/appointment/store"
)

type Adapter interface {
	Kind() entity.StoreKind

	// ToUnified converts one raw store record. A malformed record yields an
	// error the synchronizer treats as skip-and-continue.
	ToUnified(raw store.RawRecord) (entity.UnifiedAppointment, error)

	// FromUnified renders a unified appointment into the store's native
	// schema, injecting the store's synthetic fields.
	FromUnified(u entity.UnifiedAppointment) (store.RawRecord, error)

	// NativeID renders a unified id the way this store persists it, so a
	// removal by generation id finds the derived record in every store.
	NativeID(id string) string
}

// ForStore returns the adapter for the given store kind. The set of kinds is
// closed; asking for anything else is a configuration defect and panics.
func ForStore(kind entity.StoreKind) Adapter {
	switch kind {
	case entity.StoreSchedule:
		return NewScheduleAdapter()
	case entity.StoreCalendar:
		return NewCalendarAdapter()
	case entity.StoreAPI:
		return NewAPIAdapter()
	}
	panic(fmt.Sprintf("adapter: unsupported store kind %q", kind))
}

// fieldError marks a per-record conversion failure.
func fieldError(key string, v any) error {
	return fmt.Errorf("field %q has unsupported type %T", key, v)
}

// stringVal reads an optional string field. Missing fields read as "".
func stringVal(raw store.RawRecord, key string) (string, error) {
	v, present := raw[key]
	if !present || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fieldError(key, v)
	}
	return s, nil
}

// idVal reads an id field that may be stored as a string or a number.
// JSON decoding hands numeric ids over as float64.
func idVal(raw store.RawRecord, key string) (string, error) {
	v, present := raw[key]
	if !present || v == nil {
		return "", nil
	}
	switch id := v.(type) {
	case string:
		return id, nil
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(id), nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	}
	return "", fieldError(key, v)
}

func coalesce(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
