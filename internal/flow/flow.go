// Package flow implements the selection state machine: one conversation is a
// forced sequence of questions whose order depends on the operation and tool
// type chosen, ending in either a computed recommendation or a "no data"
// message. The machine is synchronous and keeps no state of its own; the
// per-conversation snapshot travels in domain.State.
package flow

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cnckit/cutmode/internal/calc"
	"github.com/cnckit/cutmode/internal/logging"
	"github.com/cnckit/cutmode/pkg/catalog"
	"github.com/cnckit/cutmode/pkg/domain"
)

// RestartCommand resets the conversation from any step.
const RestartCommand = "/start"

// Machine advances conversations against a fixed catalog.
type Machine struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// Option configures the Machine.
type Option func(*Machine)

// WithLogger sets a structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// NewMachine creates a machine over the given catalog.
func NewMachine(cat *catalog.Catalog, opts ...Option) *Machine {
	m := &Machine{
		catalog: cat,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Catalog returns the catalog the machine answers from.
func (m *Machine) Catalog() *catalog.Catalog {
	return m.catalog
}

// branch is the (operation, tool type) pair that decides the next question.
type branch struct {
	op   domain.Operation
	tool domain.ToolType
}

// nextAfterToolType is the explicit transition table for the data-dependent
// part of the flow. Pairs absent from the table have no catalog data.
var nextAfterToolType = map[branch]domain.Step{
	{domain.OpMilling, domain.ToolMonolithic}:  domain.StepToolSubtype,
	{domain.OpMilling, domain.ToolIndexable}:   domain.StepToolSubtype,
	{domain.OpDrilling, domain.ToolMonolithic}: domain.StepToolSubtype,
	{domain.OpDrilling, domain.ToolIndexable}:  domain.StepDiameter,
	{domain.OpTurning, domain.ToolProfiling}:   domain.StepInsertRadius,
	{domain.OpTurning, domain.ToolGrooving}:    domain.StepGrooveWidth,
}

// Start resets the conversation and returns the material prompt.
func (m *Machine) Start(state *domain.State) *domain.Reply {
	state.Selection = domain.Selection{}
	state.Status = domain.StatusActive
	state.Step = domain.StepMaterial
	state.History = []domain.Step{domain.StepMaterial}
	return m.prompt(state)
}

// Advance consumes exactly one raw input and returns the next prompt or a
// terminal reply. The restart command is honored in every step. Malformed
// numeric input re-asks the same step; an unknown enum answer ends the
// conversation with a no-data message (it does not re-prompt).
func (m *Machine) Advance(state *domain.State, input string) (*domain.Reply, error) {
	if state == nil {
		return nil, fmt.Errorf("flow: nil state")
	}
	if strings.EqualFold(strings.TrimSpace(input), RestartCommand) {
		return m.Start(state), nil
	}
	if state.Terminated() {
		return nil, fmt.Errorf("flow: session %s already finished", state.SessionID)
	}

	switch state.Step {
	case domain.StepMaterial:
		return m.material(state, input), nil
	case domain.StepOperation:
		return m.operation(state, input), nil
	case domain.StepToolType:
		return m.toolType(state, input), nil
	case domain.StepToolSubtype:
		return m.toolSubtype(state, input), nil
	case domain.StepDiameter:
		return m.diameter(state, input)
	case domain.StepToothCount:
		return m.toothCount(state, input), nil
	case domain.StepDepthOfCut:
		return m.depthOfCut(state, input)
	case domain.StepInsertRadius:
		return m.insertRadius(state, input)
	case domain.StepGrooveWidth:
		return m.grooveWidth(state, input)
	default:
		return nil, fmt.Errorf("flow: session %s in unknown step %q", state.SessionID, state.Step)
	}
}

func (m *Machine) material(state *domain.State, input string) *domain.Reply {
	key, ok := matchKey(m.catalog.Materials(), input)
	if !ok {
		return m.noData(state, "material", input)
	}
	state.Selection.Material = key
	state.Visit(domain.StepOperation)
	return m.prompt(state)
}

func (m *Machine) operation(state *domain.State, input string) *domain.Reply {
	sel := &state.Selection
	key, ok := matchKey(m.catalog.Operations(sel.Material), input)
	if !ok {
		return m.noData(state, "operation", input)
	}
	sel.Operation = domain.Operation(key)
	state.Visit(domain.StepToolType)
	return m.prompt(state)
}

func (m *Machine) toolType(state *domain.State, input string) *domain.Reply {
	sel := &state.Selection
	key, ok := matchKey(m.catalog.ToolTypes(sel.Material, string(sel.Operation)), input)
	if !ok {
		return m.noData(state, "tool type", input)
	}
	sel.ToolType = domain.ToolType(key)

	next, ok := nextAfterToolType[branch{sel.Operation, sel.ToolType}]
	if !ok {
		return m.noData(state, "tool type", input)
	}
	if sel.Operation == domain.OpDrilling && sel.ToolType == domain.ToolIndexable {
		// Indexable drills carry a single implicit insert grade.
		sel.ToolSubtype = catalog.SubtypeCarbide
	}
	state.Visit(next)
	return m.prompt(state)
}

func (m *Machine) toolSubtype(state *domain.State, input string) *domain.Reply {
	sel := &state.Selection
	key, ok := matchKey(m.catalog.Subtypes(sel.Material, string(sel.Operation), string(sel.ToolType)), input)
	if !ok {
		return m.noData(state, "tool subtype", input)
	}
	sel.ToolSubtype = key
	state.Visit(domain.StepDiameter)
	return m.prompt(state)
}

func (m *Machine) diameter(state *domain.State, input string) (*domain.Reply, error) {
	sel := &state.Selection
	v, err := ParseDecimal(input)
	if err != nil {
		m.logger.Debug("diameter parse failed", "session", state.SessionID, "input", input)
		return m.retry(state, msgDiameterNumeric), nil
	}
	if v <= 0 {
		return m.retry(state, msgPositive), nil
	}
	sel.Diameter = &v

	switch sel.Operation {
	case domain.OpMilling:
		state.Visit(domain.StepToothCount)
		return m.prompt(state), nil
	case domain.OpDrilling:
		// Drilling needs no depth of cut from the user.
		return m.finish(state)
	default:
		state.Visit(domain.StepDepthOfCut)
		return m.prompt(state), nil
	}
}

func (m *Machine) toothCount(state *domain.State, input string) *domain.Reply {
	n, err := ParseCount(input)
	if err != nil || n < 1 {
		m.logger.Debug("tooth count parse failed", "session", state.SessionID, "input", input)
		return m.retry(state, msgTeethInteger)
	}
	state.Selection.ToothCount = &n
	state.Visit(domain.StepDepthOfCut)
	return m.prompt(state)
}

func (m *Machine) depthOfCut(state *domain.State, input string) (*domain.Reply, error) {
	sel := &state.Selection
	v, err := ParseDecimal(input)
	if err != nil {
		m.logger.Debug("depth parse failed", "session", state.SessionID, "input", input)
		return m.retry(state, msgDepthNumeric), nil
	}
	if v <= 0 {
		return m.retry(state, msgPositive), nil
	}
	if sel.Operation == domain.OpMilling && sel.ToolSubtype == catalog.SubtypeBall &&
		sel.Diameter != nil && v > *sel.Diameter {
		// Keeps the ball-nose width sqrt argument non-negative.
		return m.retry(state, msgBallDepth), nil
	}
	sel.DepthOfCut = &v
	return m.finish(state)
}

func (m *Machine) insertRadius(state *domain.State, input string) (*domain.Reply, error) {
	sel := &state.Selection
	v, err := ParseDecimal(input)
	if err != nil {
		return m.retry(state, msgRadiusNumeric), nil
	}
	if _, err := m.catalog.LookupDimension(sel.Material, string(sel.Operation), string(sel.ToolType), v); err != nil {
		return m.noData(state, "insert radius", formatDimension(v)), nil
	}
	sel.InsertRadius = &v
	return m.finish(state)
}

func (m *Machine) grooveWidth(state *domain.State, input string) (*domain.Reply, error) {
	sel := &state.Selection
	v, err := ParseDecimal(input)
	if err != nil {
		return m.retry(state, msgWidthNumeric), nil
	}
	if _, err := m.catalog.LookupDimension(sel.Material, string(sel.Operation), string(sel.ToolType), v); err != nil {
		return m.noData(state, "insert width", formatDimension(v)), nil
	}
	sel.GrooveWidth = &v
	return m.finish(state)
}

// finish resolves the catalog entry for the completed selection, derives the
// recommendation and terminates the conversation.
func (m *Machine) finish(state *domain.State) (*domain.Reply, error) {
	sel := state.Selection
	entry, err := m.lookup(sel)
	if err != nil {
		if errors.Is(err, domain.ErrNoCatalogData) {
			return m.noData(state, "selection", ""), nil
		}
		return nil, err
	}

	rec := calc.Derive(entry, sel)
	state.Status = domain.StatusTerminated
	state.Visit(domain.StepDone)

	m.logger.Info("recommendation computed",
		"session", state.SessionID,
		"material", sel.Material,
		"operation", sel.Operation,
		"tool_type", sel.ToolType,
	)

	return &domain.Reply{
		Outcome: domain.OutcomeResult,
		Step:    domain.StepDone,
		Message: formatResult(sel, rec),
		Result:  &rec,
	}, nil
}

func (m *Machine) lookup(sel domain.Selection) (catalog.Entry, error) {
	mtl, op, tool := sel.Material, string(sel.Operation), string(sel.ToolType)
	switch {
	case sel.InsertRadius != nil:
		return m.catalog.LookupDimension(mtl, op, tool, *sel.InsertRadius)
	case sel.GrooveWidth != nil:
		return m.catalog.LookupDimension(mtl, op, tool, *sel.GrooveWidth)
	default:
		return m.catalog.Lookup(mtl, op, tool, sel.ToolSubtype)
	}
}

// retry re-asks the current step with an explanatory prompt.
func (m *Machine) retry(state *domain.State, msg string) *domain.Reply {
	r := m.prompt(state)
	r.Outcome = domain.OutcomeRetry
	r.Prompt = msg
	return r
}

// noData terminates the conversation: unknown enum answers and dimension
// misses end the flow rather than re-prompting.
func (m *Machine) noData(state *domain.State, what, value string) *domain.Reply {
	state.Status = domain.StatusTerminated
	state.Visit(domain.StepDone)
	m.logger.Debug("catalog miss", "session", state.SessionID, "kind", what, "value", value)
	return &domain.Reply{
		Outcome: domain.OutcomeNoData,
		Step:    domain.StepDone,
		Message: fmt.Sprintf("Sorry, I have no cutting data for that %s. %s", what, msgRestartHint),
	}
}
