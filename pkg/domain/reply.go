package domain

// Outcome classifies what a single turn of the machine produced.
type Outcome string

const (
	// OutcomePrompt asks the host to collect the input for Reply.Step.
	OutcomePrompt Outcome = "prompt"
	// OutcomeRetry re-asks the same step after a malformed answer.
	OutcomeRetry Outcome = "retry"
	// OutcomeResult is a terminal reply carrying a Recommendation.
	OutcomeResult Outcome = "result"
	// OutcomeNoData is a terminal reply for a selection with no catalog data.
	OutcomeNoData Outcome = "no_data"
)

// Reply is the machine's answer to one input: either the next prompt
// (with the legal options at the current catalog path) or a terminal message.
type Reply struct {
	Outcome Outcome  `json:"outcome"`
	Step    Step     `json:"step"`
	Prompt  string   `json:"prompt,omitempty"`
	Options []string `json:"options,omitempty"`

	// Message and Result are set on terminal replies only.
	Message string          `json:"message,omitempty"`
	Result  *Recommendation `json:"result,omitempty"`
}

// Terminal reports whether this reply ends the conversation.
func (r *Reply) Terminal() bool {
	return r.Outcome == OutcomeResult || r.Outcome == OutcomeNoData
}
