package constants

import "time"

// Date and time layouts used across every store schema.
const (
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04"
	DateTimeLayout  = "2006-01-02 15:04"
	TimestampLayout = "2006-01-02T15:04:05"
)

// Appointment defaults.
const (
	DefaultPatientName          = "Voice User"
	DefaultContactInfo          = "voice@example.com"
	DefaultAppointmentDuration  = 60 * time.Minute
	CalendarTypeVoiceAutomation = "voice_automation"
)

// Identifier prefixes.
const (
	GenerationIDPrefix     = "UNIFIED_"
	ConfirmationCodePrefix = "CONF_"
)

// Store backing file defaults, relative to the data directory.
const (
	ScheduleFileName = "schedules.json"
	CalendarFileName = "calendar_events.json"
	APIFileName      = "api_appointments.json"
)

// Database pool settings.
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Redis keys and cache settings.
const (
	RedisKeyUnifiedListing = "appointments:unified"
	UnifiedListingTTL      = 30 * time.Second
)

// Asynq task types.
const (
	TaskExportUpload = "export:upload"
	TaskConflictScan = "sync:conflict_scan"
)

// Periodic conflict scan schedule (asynq scheduler cron spec).
const ConflictScanCronSpec = "*/15 * * * *"
