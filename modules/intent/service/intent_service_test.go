package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appointment-sync/core/cache"
	appointmentdto "appointment-sync/modules/appointment/dto"
	appointmentservice "appointment-sync/modules/appointment/service"
	"appointment-sync/modules/appointment/store"
	bookingservice "appointment-sync/modules/booking/service"
	"appointment-sync/modules/intent/dto"
)

func newTestIntentService(t *testing.T) (*intentService, *appointmentservice.SyncService) {
	t.Helper()
	dir := t.TempDir()
	syncSvc := appointmentservice.NewSyncService(
		store.NewFileAccessor(filepath.Join(dir, "schedules.json")),
		store.NewFileAccessor(filepath.Join(dir, "calendar_events.json")),
		store.NewFileAccessor(filepath.Join(dir, "api_appointments.json")),
	)
	bookingSvc := bookingservice.NewBookingService(syncSvc, cache.NewNoop(), nil)
	return &intentService{
		bookingSvc: bookingSvc,
		syncSvc:    syncSvc,
		parser:     newDateParser(),
		now:        func() time.Time { return testNow },
	}, syncSvc
}

func TestKeywordFallback(t *testing.T) {
	cases := map[string]string{
		"Book a meeting for next Tuesday": dto.IntentBookSchedule,
		"I need to add an event":          dto.IntentBookSchedule,
		"Cancel my dentist appointment":   dto.IntentCancelSchedule,
		"please delete it":                dto.IntentCancelSchedule,
		"Show me all my appointments":     dto.IntentGetSchedule,
		"list everything":                 dto.IntentGetSchedule,
		"what is the weather like":        dto.IntentUnknown,
	}
	for text, want := range cases {
		got := keywordFallback(text)
		assert.Equal(t, want, got.Intent, "input %q", text)
		assert.Equal(t, text, got.Description)
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"intent":"unknown"}`, stripCodeFence("```json\n{\"intent\":\"unknown\"}\n```"))
	assert.Equal(t, `{"intent":"unknown"}`, stripCodeFence("```\n{\"intent\":\"unknown\"}\n```"))
	assert.Equal(t, `{"intent":"unknown"}`, stripCodeFence(`{"intent":"unknown"}`))
}

func TestInterpretEmptyText(t *testing.T) {
	svc, _ := newTestIntentService(t)
	_, appErr := svc.Interpret(context.Background(), "   ")
	require.NotNil(t, appErr)
}

// Without an LLM client the keyword fallback carries the whole utterance as
// the description, so a booking intent arrives incomplete.
func TestInterpretAndExecuteIncompleteBooking(t *testing.T) {
	svc, _ := newTestIntentService(t)

	resp, appErr := svc.InterpretAndExecute(context.Background(), "book a checkup")
	require.Nil(t, appErr)
	assert.Equal(t, dto.IntentBookSchedule, resp.Intent.Intent)
	assert.False(t, resp.Executed)
	assert.Contains(t, resp.Message, "date")
}

func TestInterpretAndExecuteGetSchedule(t *testing.T) {
	svc, _ := newTestIntentService(t)

	resp, appErr := svc.InterpretAndExecute(context.Background(), "show my appointments")
	require.Nil(t, appErr)
	assert.True(t, resp.Executed)
	assert.Equal(t, "No appointments found across all systems.", resp.Result)
}

func TestInterpretAndExecuteCancelByDescription(t *testing.T) {
	svc, syncSvc := newTestIntentService(t)
	ctx := context.Background()

	syncSvc.AddToAll(ctx, appointmentdto.BookingRequest{
		Date: "2099-01-02", Time: "10:00", Description: "Dentist visit",
	})

	resp, appErr := svc.InterpretAndExecute(ctx, "cancel dentist")
	require.Nil(t, appErr)
	assert.True(t, resp.Executed)
	assert.Empty(t, syncSvc.GetAll(ctx))
}

func TestInterpretAndExecuteUnknown(t *testing.T) {
	svc, _ := newTestIntentService(t)

	resp, appErr := svc.InterpretAndExecute(context.Background(), "what is the weather like")
	require.Nil(t, appErr)
	assert.False(t, resp.Executed)
	assert.Equal(t, dto.IntentUnknown, resp.Intent.Intent)
}

func TestValidIntent(t *testing.T) {
	assert.True(t, validIntent(dto.IntentBookSchedule))
	assert.True(t, validIntent(dto.IntentUnknown))
	assert.False(t, validIntent("fallback"))
	assert.False(t, validIntent(""))
}
