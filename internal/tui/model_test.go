package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filetz/internal/domain"
)

func samplePlan(n int) domain.Plan {
	plan := domain.Plan{Listed: n + 1, Skipped: 1}
	for i := 0; i < n; i++ {
		plan.Operations = append(plan.Operations, domain.Operation{
			SourceName: "230115120000.txt",
			TargetName: "230115130000.txt",
		})
	}
	return plan
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestPlanReadyAsksForConfirmation(t *testing.T) {
	m := NewModel(context.Background(), Config{Mode: domain.ModeMove})
	m, _ = update(t, m, PlanReadyMsg{Plan: samplePlan(2)})

	assert.Equal(t, PhaseConfirm, m.Phase)
	assert.Contains(t, m.View(), "Move 2 files?")
}

func TestDryRunSkipsConfirmation(t *testing.T) {
	executed := false
	m := NewModel(context.Background(), Config{
		DryRun: true,
		Execute: func(ctx context.Context, plan domain.Plan, progress ProgressFunc) ([]string, error) {
			executed = true
			return []string{"a --> b"}, nil
		},
	})
	m, cmd := update(t, m, PlanReadyMsg{Plan: samplePlan(1)})
	require.Equal(t, PhaseExecuting, m.Phase)
	require.NotNil(t, cmd)

	msg := cmd()
	assert.True(t, executed)
	m, _ = update(t, m, msg)
	assert.Equal(t, PhaseDone, m.Phase)
	assert.Equal(t, []string{"a --> b"}, m.Lines)
}

func TestDeclineQuitsWithoutExecuting(t *testing.T) {
	m := NewModel(context.Background(), Config{})
	m, _ = update(t, m, PlanReadyMsg{Plan: samplePlan(1)})
	m, _ = update(t, m, ConfirmMsg{Confirmed: false})

	assert.True(t, m.Declined)
	assert.True(t, m.Quitting)
	assert.Empty(t, m.View())
}

func TestConfirmRunsExecuteAndReportsProgress(t *testing.T) {
	var sent []tea.Msg
	m := NewModel(context.Background(), Config{
		Execute: func(ctx context.Context, plan domain.Plan, progress ProgressFunc) ([]string, error) {
			for i := range plan.Operations {
				progress(i+1, len(plan.Operations), plan.Operations[i].TargetName)
			}
			return []string{"x --> y"}, nil
		},
	})
	m.send = func(msg tea.Msg) { sent = append(sent, msg) }

	m, _ = update(t, m, PlanReadyMsg{Plan: samplePlan(2)})
	m, _ = update(t, m, ConfirmMsg{Confirmed: true})
	require.Equal(t, PhaseExecuting, m.Phase)

	done := m.executeCmd()()
	require.Len(t, sent, 2)
	m, _ = update(t, m, sent[1])
	assert.Contains(t, m.View(), "2/2 files")

	m, _ = update(t, m, done)
	assert.Equal(t, PhaseDone, m.Phase)
	assert.Equal(t, []string{"x --> y"}, m.Lines)
}

func TestExecuteErrorMovesToErrorPhase(t *testing.T) {
	m := NewModel(context.Background(), Config{
		Execute: func(ctx context.Context, plan domain.Plan, progress ProgressFunc) ([]string, error) {
			return nil, errors.New("disk full")
		},
	})
	m, _ = update(t, m, PlanReadyMsg{Plan: samplePlan(1)})
	m, _ = update(t, m, m.executeCmd()())

	assert.Equal(t, PhaseError, m.Phase)
	assert.Contains(t, m.View(), "disk full")
}

func TestFormatOperationsTruncates(t *testing.T) {
	lines := formatOperations(samplePlan(6).Operations, 4)
	require.Len(t, lines, 5)
	assert.Contains(t, lines[2], "2 more files")
}
