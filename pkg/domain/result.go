package domain

// Recommendation holds the derived cutting parameters for a completed
// selection. Optional fields are nil when the quantity is undefined for the
// chosen path (e.g. no spindle speed without a diameter).
type Recommendation struct {
	Speed float64 `json:"speed"` // Cutting speed (m/min)
	Feed  float64 `json:"feed"`  // Feed (mm/rev or mm/tooth)

	Depth        *float64 `json:"depth,omitempty"`         // Depth of cut (mm)
	SpindleSpeed *float64 `json:"spindle_speed,omitempty"` // Spindle speed (rpm)
	FeedRate     *float64 `json:"feed_rate,omitempty"`     // Linear feed (mm/min)

	// CuttingWidth is the geometric engagement width for milling cutters.
	CuttingWidth *float64 `json:"cutting_width,omitempty"` // mm

	// OverlapPercent is the recommended radial stepover as a percentage of
	// the cutter diameter; PassWidth is that percentage applied to the
	// entered diameter.
	OverlapPercent *float64 `json:"overlap_percent,omitempty"`
	PassWidth      *float64 `json:"pass_width,omitempty"` // mm
}
