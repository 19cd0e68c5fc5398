package flow_test

import (
	"testing"

	"github.com/cnckit/cutmode/internal/flow"
	"github.com/cnckit/cutmode/pkg/catalog"
	"github.com/cnckit/cutmode/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMachine(t *testing.T) *flow.Machine {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return flow.NewMachine(cat)
}

// advance feeds the inputs one at a time and returns the last reply.
func advance(t *testing.T, m *flow.Machine, state *domain.State, inputs ...string) *domain.Reply {
	t.Helper()
	var reply *domain.Reply
	var err error
	for _, input := range inputs {
		reply, err = m.Advance(state, input)
		require.NoError(t, err, "input %q", input)
	}
	return reply
}

func TestFlow_DrillingMonolithic(t *testing.T) {
	m := newMachine(t)
	state := domain.NewState("s1")

	reply := m.Start(state)
	assert.Equal(t, domain.OutcomePrompt, reply.Outcome)
	assert.Equal(t, domain.StepMaterial, reply.Step)
	assert.Equal(t, []string{"steel", "non-ferrous"}, reply.Options)

	reply = advance(t, m, state, "steel")
	assert.Equal(t, domain.StepOperation, reply.Step)
	assert.Equal(t, []string{"milling", "turning", "drilling"}, reply.Options)

	reply = advance(t, m, state, "drilling", "monolithic")
	assert.Equal(t, domain.StepToolSubtype, reply.Step)
	assert.Equal(t, []string{"hss", "hss-co", "carbide"}, reply.Options)

	reply = advance(t, m, state, "carbide")
	assert.Equal(t, domain.StepDiameter, reply.Step)

	reply = advance(t, m, state, "10")
	assert.Equal(t, domain.OutcomeResult, reply.Outcome)
	assert.True(t, state.Terminated())

	assert.Contains(t, reply.Message, "Recommended parameters for steel (drilling), monolithic tool (carbide):")
	assert.Contains(t, reply.Message, "Cutting speed: 85.0 m/min")
	assert.Contains(t, reply.Message, "Feed: 0.15 mm/rev")
	assert.Contains(t, reply.Message, "Feed rate: 405.8 mm/min")
	assert.Contains(t, reply.Message, "Spindle speed: 2706 rpm")
	assert.Contains(t, reply.Message, "Send /start for a new calculation.")
	assert.NotContains(t, reply.Message, "Depth of cut", "drilling reports no recommended depth")
	assert.NotContains(t, reply.Message, "Cutting width")
	require.NotNil(t, reply.Result)
	assert.Nil(t, reply.Result.Depth)
}

func TestFlow_DrillingIndexableSkipsSubtype(t *testing.T) {
	m := newMachine(t)
	state := domain.NewState("s2")
	m.Start(state)

	reply := advance(t, m, state, "steel", "drilling", "indexable")
	assert.Equal(t, domain.StepDiameter, reply.Step, "indexable drills jump straight to diameter")
	assert.Equal(t, catalog.SubtypeCarbide, state.Selection.ToolSubtype)

	reply = advance(t, m, state, "12,5")
	assert.Equal(t, domain.OutcomeResult, reply.Outcome)
	require.NotNil(t, state.Selection.Diameter)
	assert.Equal(t, 12.5, *state.Selection.Diameter)
}

func TestFlow_MillingCylindrical(t *testing.T) {
	m := newMachine(t)
	state := domain.NewState("s3")
	m.Start(state)

	reply := advance(t, m, state, "steel", "milling", "monolithic", "cylindrical")
	assert.Equal(t, domain.StepDiameter, reply.Step)

	reply = advance(t, m, state, "10")
	assert.Equal(t, domain.StepToothCount, reply.Step)

	reply = advance(t, m, state, "4")
	assert.Equal(t, domain.StepDepthOfCut, reply.Step)

	reply = advance(t, m, state, "3")
	assert.Equal(t, domain.OutcomeResult, reply.Outcome)
	assert.Contains(t, reply.Message, "Cutting speed: 100.0 m/min")
	assert.Contains(t, reply.Message, "Feed: 0.20 mm/rev")
	// Depth of cut 3 on a 10 mm cutter allows a full-diameter pass.
	assert.Contains(t, reply.Message, "Cutting width: 10.0 mm")
	assert.NotContains(t, reply.Message, "Depth of cut:")
	require.NotNil(t, reply.Result)
	require.NotNil(t, reply.Result.OverlapPercent)
	assert.Equal(t, 100.0, *reply.Result.OverlapPercent)
}

func TestFlow_MillingBallDepthValidation(t *testing.T) {
	m := newMachine(t)
	state := domain.NewState("s4")
	m.Start(state)

	advance(t, m, state, "steel", "milling", "monolithic", "ball", "10", "2")

	reply := advance(t, m, state, "12")
	assert.Equal(t, domain.OutcomeRetry, reply.Outcome, "ball-nose depth beyond diameter re-asks")
	assert.Equal(t, domain.StepDepthOfCut, reply.Step)

	reply = advance(t, m, state, "2")
	assert.Equal(t, domain.OutcomeResult, reply.Outcome)
	require.NotNil(t, reply.Result.CuttingWidth)
	assert.InDelta(t, 8.0, *reply.Result.CuttingWidth, 1e-9)
}

func TestFlow_TurningProfiling(t *testing.T) {
	m := newMachine(t)
	state := domain.NewState("s5")
	m.Start(state)

	reply := advance(t, m, state, "steel", "turning", "profiling")
	assert.Equal(t, domain.StepInsertRadius, reply.Step)
	assert.Equal(t, []string{"0.4", "0.8", "1.2"}, reply.Options)

	reply = advance(t, m, state, "0,8")
	assert.Equal(t, domain.OutcomeResult, reply.Outcome)
	assert.Contains(t, reply.Message, "Recommended parameters for steel (turning), profiling tool with 0.8 mm insert radius:")
	assert.Contains(t, reply.Message, "Cutting speed: 95.0 m/min")
	assert.Contains(t, reply.Message, "Depth of cut: 3.0 mm")
	assert.NotContains(t, reply.Message, "Spindle speed", "no diameter means no rpm")
}

func TestFlow_TurningProfilingUnknownRadius(t *testing.T) {
	m := newMachine(t)
	state := domain.NewState("s6")
	m.Start(state)

	reply := advance(t, m, state, "steel", "turning", "profiling", "0.5")
	assert.Equal(t, domain.OutcomeNoData, reply.Outcome, "radii between catalog keys are a miss, not interpolated")
	assert.True(t, state.Terminated())
}

func TestFlow_TurningGrooving(t *testing.T) {
	m := newMachine(t)
	state := domain.NewState("s7")
	m.Start(state)

	reply := advance(t, m, state, "steel", "turning", "grooving")
	assert.Equal(t, domain.StepGrooveWidth, reply.Step)
	assert.Empty(t, reply.Options)

	reply = advance(t, m, state, "3")
	assert.Equal(t, domain.OutcomeResult, reply.Outcome)
	assert.Contains(t, reply.Message, "Cutting speed: 60.0 m/min")
	assert.Contains(t, reply.Message, "Feed: 0.14 mm/rev")
	assert.NotContains(t, reply.Message, "Depth of cut:", "grooving entries carry no depth range")
}

func TestFlow_UnknownMaterialTerminates(t *testing.T) {
	m := newMachine(t)
	state := domain.NewState("s8")
	m.Start(state)

	reply := advance(t, m, state, "wood")
	assert.Equal(t, domain.OutcomeNoData, reply.Outcome)
	assert.Contains(t, reply.Message, "no cutting data for that material")
	assert.True(t, state.Terminated())

	_, err := m.Advance(state, "steel")
	assert.Error(t, err, "a finished conversation accepts only the restart command")
}

func TestFlow_NumericRetries(t *testing.T) {
	m := newMachine(t)
	state := domain.NewState("s9")
	m.Start(state)
	advance(t, m, state, "steel", "milling", "monolithic", "cylindrical")

	reply := advance(t, m, state, "abc")
	assert.Equal(t, domain.OutcomeRetry, reply.Outcome)
	assert.Equal(t, domain.StepDiameter, reply.Step)

	reply = advance(t, m, state, "-5")
	assert.Equal(t, domain.OutcomeRetry, reply.Outcome)

	reply = advance(t, m, state, "10")
	assert.Equal(t, domain.StepToothCount, reply.Step)

	reply = advance(t, m, state, "4.5")
	assert.Equal(t, domain.OutcomeRetry, reply.Outcome, "tooth count must be an integer")

	reply = advance(t, m, state, "4")
	assert.Equal(t, domain.StepDepthOfCut, reply.Step)
}

func TestFlow_RestartFromAnyState(t *testing.T) {
	m := newMachine(t)

	t.Run("mid conversation", func(t *testing.T) {
		state := domain.NewState("r1")
		m.Start(state)
		advance(t, m, state, "steel", "milling")

		reply := advance(t, m, state, "/start")
		assert.Equal(t, domain.StepMaterial, reply.Step)
		assert.Equal(t, domain.Selection{}, state.Selection)
		assert.Equal(t, []domain.Step{domain.StepMaterial}, state.History)
	})

	t.Run("after terminal", func(t *testing.T) {
		state := domain.NewState("r2")
		m.Start(state)
		advance(t, m, state, "wood")
		require.True(t, state.Terminated())

		reply := advance(t, m, state, "/START")
		assert.Equal(t, domain.StepMaterial, reply.Step)
		assert.False(t, state.Terminated())
	})
}

func TestFlow_HistoryRecordsVisitedSteps(t *testing.T) {
	m := newMachine(t)
	state := domain.NewState("h1")
	m.Start(state)
	advance(t, m, state, "steel", "drilling", "indexable", "10")

	assert.Equal(t, []domain.Step{
		domain.StepMaterial,
		domain.StepOperation,
		domain.StepToolType,
		domain.StepDiameter,
		domain.StepDone,
	}, state.History)
}
