package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/olebedev/when"

	"appointment-sync/core/errors"
	"appointment-sync/core/logger"
	appointmentservice "appointment-sync/modules/appointment/service"
	bookingdto "appointment-sync/modules/booking/dto"
	bookingservice "appointment-sync/modules/booking/service"
	"appointment-sync/modules/intent/dto"
)

const systemPromptTemplate = `You are a scheduling assistant. The current date and time is {current_datetime}.
Extract the user's scheduling intent from their message and respond with ONLY a JSON object, no prose.
The JSON object has these fields:
  "intent": one of "book_schedule", "cancel_schedule", "get_schedule", "unknown"
  "date": the appointment date in YYYY-MM-DD format, resolving relative expressions, or omit if absent
  "time": the appointment time in HH:MM 24-hour format, or omit if absent
  "description": a short description of the appointment, or omit if absent
  "id": the appointment id when the user refers to one, or omit if absent`

type IntentService interface {
	Interpret(ctx context.Context, text string) (*dto.Intent, *errors.AppError)
	InterpretAndExecute(ctx context.Context, text string) (*dto.InterpretResponse, *errors.AppError)
}

type intentService struct {
	llm        *anthropic.Client
	model      string
	bookingSvc bookingservice.BookingService
	syncSvc    *appointmentservice.SyncService
	parser     *when.Parser
	now        func() time.Time
}

// NewIntentService builds the interpreter. apiKey may be empty; the
// service then relies on the keyword fallback parser alone.
func NewIntentService(apiKey, model string, bookingSvc bookingservice.BookingService, syncSvc *appointmentservice.SyncService) IntentService {
	svc := &intentService{
		model:      model,
		bookingSvc: bookingSvc,
		syncSvc:    syncSvc,
		parser:     newDateParser(),
		now:        time.Now,
	}
	if apiKey != "" {
		client := anthropic.NewClient(option.WithAPIKey(apiKey))
		svc.llm = &client
	}
	return svc
}

func (s *intentService) Interpret(ctx context.Context, text string) (*dto.Intent, *errors.AppError) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "text is required", nil)
	}

	intent := s.llmIntent(ctx, text)
	if intent == nil {
		intent = keywordFallback(text)
	}
	s.normalize(intent)
	return intent, nil
}

func (s *intentService) InterpretAndExecute(ctx context.Context, text string) (*dto.InterpretResponse, *errors.AppError) {
	intent, appErr := s.Interpret(ctx, text)
	if appErr != nil {
		return nil, appErr
	}
	logger.Info("IntentService:InterpretAndExecute:Intent", "intent", intent.Intent, "date", intent.Date, "time", intent.Time)

	resp := &dto.InterpretResponse{Intent: intent}
	switch intent.Intent {
	case dto.IntentBookSchedule:
		if intent.Date == "" || intent.Time == "" || intent.Description == "" {
			resp.Message = "I need a date, a time and a description to book an appointment."
			return resp, nil
		}
		req := bookingdto.BookAppointmentRequest{
			Date:        intent.Date,
			Time:        intent.Time,
			Description: intent.Description,
		}
		result, bookErr := s.bookingSvc.Book(ctx, &req)
		if bookErr != nil {
			resp.Message = bookErr.Message
			return resp, nil
		}
		resp.Executed = true
		resp.Result = result
		resp.Message = result.Message

	case dto.IntentCancelSchedule:
		id := intent.ID
		if id == "" {
			id = s.findByDescription(ctx, intent.Description)
		}
		if id == "" {
			resp.Message = "I could not find a matching appointment to cancel."
			return resp, nil
		}
		result, cancelErr := s.bookingSvc.Cancel(ctx, id)
		if cancelErr != nil {
			resp.Message = cancelErr.Message
			return resp, nil
		}
		resp.Executed = true
		resp.Result = result
		resp.Message = result.Message

	case dto.IntentGetSchedule:
		resp.Executed = true
		resp.Result = s.syncSvc.Summary(ctx)
		resp.Message = "schedule retrieved"

	default:
		resp.Message = "Sorry, I did not understand that request."
	}
	return resp, nil
}

// llmIntent asks the model for a structured intent. Any failure along
// the way returns nil so the keyword fallback takes over.
func (s *intentService) llmIntent(ctx context.Context, text string) *dto.Intent {
	if s.llm == nil {
		return nil
	}

	system := strings.ReplaceAll(systemPromptTemplate, "{current_datetime}", s.now().Format("2006-01-02 15:04:05"))
	msg, err := s.llm.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: 512,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})
	if err != nil {
		logger.Error("IntentService:llmIntent:Error:", err)
		return nil
	}

	var raw strings.Builder
	for _, block := range msg.Content {
		raw.WriteString(block.Text)
	}

	var intent dto.Intent
	if err := json.Unmarshal([]byte(stripCodeFence(raw.String())), &intent); err != nil {
		logger.Warn("IntentService:llmIntent:InvalidJSON", "content", raw.String())
		return nil
	}
	if !validIntent(intent.Intent) {
		logger.Warn("IntentService:llmIntent:InvalidIntent", "intent", intent.Intent)
		return nil
	}
	return &intent
}

func (s *intentService) normalize(intent *dto.Intent) {
	now := s.now()
	if intent.Date != "" {
		intent.Date = normalizeDate(s.parser, intent.Date, now)
	}
	if intent.Time != "" {
		intent.Time = normalizeTime(intent.Time)
	}
	intent.Description = sanitizeDescription(intent.Description)
}

// Command words that carry no appointment subject; the fallback parser
// hands over the whole utterance as the description.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "my": {}, "for": {}, "on": {}, "at": {},
	"about": {}, "it": {}, "please": {}, "cancel": {}, "delete": {},
	"remove": {}, "appointment": {}, "appointments": {}, "meeting": {},
	"meetings": {}, "schedule": {},
}

// findByDescription resolves a cancellation phrased by subject rather than
// id to the first appointment whose description shares a subject word.
func (s *intentService) findByDescription(ctx context.Context, desc string) string {
	var words []string
	for _, word := range strings.Fields(strings.ToLower(desc)) {
		if _, skip := stopwords[word]; !skip {
			words = append(words, word)
		}
	}
	if len(words) == 0 {
		return ""
	}

	for _, appt := range s.syncSvc.GetAll(ctx) {
		haystack := strings.ToLower(appt.Description)
		for _, word := range words {
			if strings.Contains(haystack, word) {
				return appt.ID
			}
		}
	}
	return ""
}

func keywordFallback(text string) *dto.Intent {
	lower := strings.ToLower(text)
	intent := dto.IntentUnknown
	switch {
	case containsAny(lower, "book", "schedule", "add"):
		intent = dto.IntentBookSchedule
	case containsAny(lower, "cancel", "delete", "remove"):
		intent = dto.IntentCancelSchedule
	case containsAny(lower, "list", "show", "appointments", "meetings"):
		intent = dto.IntentGetSchedule
	}
	return &dto.Intent{Intent: intent, Description: text}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func validIntent(intent string) bool {
	switch intent {
	case dto.IntentBookSchedule, dto.IntentCancelSchedule, dto.IntentGetSchedule, dto.IntentUnknown:
		return true
	}
	return false
}

// stripCodeFence unwraps a ```json ... ``` block if the model returned one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
