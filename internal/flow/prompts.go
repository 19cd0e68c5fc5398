package flow

import (
	"fmt"
	"strings"

	"github.com/cnckit/cutmode/pkg/domain"
)

const (
	msgWelcome     = "Hi! I will help you pick the right cutting parameters. First, choose the workpiece material:"
	msgRestartHint = "Send /start for a new calculation."

	msgDiameterNumeric = "Please enter a numeric value for the diameter (use a dot or comma for decimals)."
	msgDepthNumeric    = "Please enter a numeric value for the depth of cut (use a dot or comma for decimals)."
	msgRadiusNumeric   = "Please enter a numeric value for the insert radius."
	msgWidthNumeric    = "Please enter a numeric value for the insert width."
	msgTeethInteger    = "Please enter a whole number for the tooth count."
	msgPositive        = "Please enter a value greater than zero."
	msgBallDepth       = "For a ball-nose cutter the depth of cut cannot exceed the diameter. Enter a smaller value:"
)

// prompt builds the question for the step the state is waiting on, with the
// legal options at the current catalog path.
func (m *Machine) prompt(state *domain.State) *domain.Reply {
	sel := state.Selection
	r := &domain.Reply{Outcome: domain.OutcomePrompt, Step: state.Step}

	switch state.Step {
	case domain.StepMaterial:
		r.Prompt = msgWelcome
		r.Options = m.catalog.Materials()
	case domain.StepOperation:
		r.Prompt = fmt.Sprintf("Great! Now choose the operation for %s:", sel.Material)
		r.Options = m.catalog.Operations(sel.Material)
	case domain.StepToolType:
		r.Prompt = fmt.Sprintf("Choose the tool type for %s:", sel.Operation)
		r.Options = m.catalog.ToolTypes(sel.Material, string(sel.Operation))
	case domain.StepToolSubtype:
		if sel.Operation == domain.OpDrilling {
			r.Prompt = "Choose the drill type:"
		} else {
			r.Prompt = "Choose the cutter type:"
		}
		r.Options = m.catalog.Subtypes(sel.Material, string(sel.Operation), string(sel.ToolType))
	case domain.StepDiameter:
		if sel.Operation == domain.OpDrilling {
			r.Prompt = "Enter the drill diameter (mm):"
		} else {
			r.Prompt = "Enter the cutter diameter (mm):"
		}
	case domain.StepToothCount:
		r.Prompt = "Enter the number of cutter teeth:"
	case domain.StepDepthOfCut:
		r.Prompt = "Enter the depth of cut (mm):"
	case domain.StepInsertRadius:
		r.Prompt = "Choose the insert radius (mm):"
		r.Options = m.catalog.Dimensions(sel.Material, string(sel.Operation), string(sel.ToolType))
	case domain.StepGrooveWidth:
		r.Prompt = "Enter the insert width (mm):"
	}
	return r
}

// formatResult renders the terminal message. Speed and feed are always
// shown; the rest appears only when defined for the chosen path.
func formatResult(sel domain.Selection, rec domain.Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recommended parameters for %s (%s), %s:\n", sel.Material, sel.Operation, describeTool(sel))
	fmt.Fprintf(&b, "Cutting speed: %.1f m/min\n", rec.Speed)
	fmt.Fprintf(&b, "Feed: %.2f mm/rev\n", rec.Feed)
	if rec.FeedRate != nil {
		fmt.Fprintf(&b, "Feed rate: %.1f mm/min\n", *rec.FeedRate)
	}
	if sel.Operation != domain.OpMilling && rec.Depth != nil {
		fmt.Fprintf(&b, "Depth of cut: %.1f mm\n", *rec.Depth)
	}
	if rec.PassWidth != nil {
		fmt.Fprintf(&b, "Cutting width: %.1f mm\n", *rec.PassWidth)
	}
	if rec.SpindleSpeed != nil {
		fmt.Fprintf(&b, "Spindle speed: %.0f rpm\n", *rec.SpindleSpeed)
	}
	b.WriteString("\n")
	b.WriteString(msgRestartHint)
	return b.String()
}

func describeTool(sel domain.Selection) string {
	switch {
	case sel.InsertRadius != nil:
		return fmt.Sprintf("%s tool with %s mm insert radius", sel.ToolType, formatDimension(*sel.InsertRadius))
	case sel.GrooveWidth != nil:
		return fmt.Sprintf("%s tool with %s mm insert width", sel.ToolType, formatDimension(*sel.GrooveWidth))
	case sel.ToolSubtype != "":
		return fmt.Sprintf("%s tool (%s)", sel.ToolType, sel.ToolSubtype)
	default:
		return fmt.Sprintf("%s tool", sel.ToolType)
	}
}
