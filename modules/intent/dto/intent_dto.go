package dto

// InterpretRequest carries a free-form utterance to be turned into a
// structured scheduling intent.
type InterpretRequest struct {
	Text string `json:"text"`
}

// Intent is the structured form of a scheduling request. Date is
// YYYY-MM-DD and Time is HH:MM once normalized; either may be empty
// when the utterance did not carry it.
type Intent struct {
	Intent      string `json:"intent"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time,omitempty"`
	Description string `json:"description,omitempty"`
	ID          string `json:"id,omitempty"`
}

type InterpretResponse struct {
	Intent   *Intent `json:"intent"`
	Executed bool    `json:"executed"`
	Result   any     `json:"result,omitempty"`
	Message  string  `json:"message"`
}

const (
	IntentBookSchedule   = "book_schedule"
	IntentCancelSchedule = "cancel_schedule"
	IntentGetSchedule    = "get_schedule"
	IntentUnknown        = "unknown"
)
