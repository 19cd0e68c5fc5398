package domain

// Operation is the machining operation being configured.
type Operation string

const (
	OpMilling  Operation = "milling"
	OpTurning  Operation = "turning"
	OpDrilling Operation = "drilling"
)

// ToolType is the tool family within an operation. Valid values depend on
// the operation: milling and drilling use monolithic/indexable, turning uses
// profiling/grooving.
type ToolType string

const (
	ToolMonolithic ToolType = "monolithic"
	ToolIndexable  ToolType = "indexable"
	ToolProfiling  ToolType = "profiling"
	ToolGrooving   ToolType = "grooving"
)

// Selection accumulates the user's answers for one conversation.
// Fields are set strictly in step order and never overwritten; a restart
// replaces the whole value. Pointer fields distinguish "not asked yet"
// from a zero answer.
type Selection struct {
	Material     string    `json:"material,omitempty"`
	Operation    Operation `json:"operation,omitempty"`
	ToolType     ToolType  `json:"tool_type,omitempty"`
	ToolSubtype  string    `json:"tool_subtype,omitempty"`
	Diameter     *float64  `json:"diameter,omitempty"`
	ToothCount   *int      `json:"tooth_count,omitempty"`
	DepthOfCut   *float64  `json:"depth_of_cut,omitempty"`
	InsertRadius *float64  `json:"insert_radius,omitempty"`
	GrooveWidth  *float64  `json:"groove_width,omitempty"`
}
