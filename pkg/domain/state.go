package domain

// Step identifies which input the conversation is waiting for.
type Step string

const (
	StepMaterial     Step = "material"
	StepOperation    Step = "operation"
	StepToolType     Step = "tool_type"
	StepToolSubtype  Step = "tool_subtype"
	StepDiameter     Step = "diameter"
	StepToothCount   Step = "tooth_count"
	StepDepthOfCut   Step = "depth_of_cut"
	StepInsertRadius Step = "insert_radius"
	StepGrooveWidth  Step = "groove_width"
	StepDone         Step = "done"
)

// ExecutionStatus defines the current mode of the conversation.
type ExecutionStatus string

const (
	StatusActive     ExecutionStatus = "active"     // Waiting for the next input
	StatusTerminated ExecutionStatus = "terminated" // Result delivered or conversation ended
)

// State represents the current snapshot of one conversation.
// It is the unit persisted by a StateStore between turns.
type State struct {
	// SessionID identifies the conversation this state belongs to.
	SessionID string `json:"session_id"`

	// Step is the input the machine is currently waiting for.
	Step Step `json:"step"`

	// Status indicates whether the conversation is live or finished.
	Status ExecutionStatus `json:"status"`

	// Selection holds the answers collected so far, in step order.
	Selection Selection `json:"selection"`

	// History tracks the steps visited, for debugging and introspection.
	History []Step `json:"history,omitempty"`
}

// NewState creates a clean state waiting for the material choice.
func NewState(sessionID string) *State {
	return &State{
		SessionID: sessionID,
		Step:      StepMaterial,
		Status:    StatusActive,
		History:   []Step{StepMaterial},
	}
}

// Visit records a transition to the given step.
func (s *State) Visit(step Step) {
	s.Step = step
	s.History = append(s.History, step)
}

// Terminated reports whether the conversation has finished.
func (s *State) Terminated() bool {
	return s.Status == StatusTerminated
}
