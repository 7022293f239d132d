package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"filetz/internal/domain"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhasePlanning Phase = iota
	PhaseConfirm
	PhaseExecuting
	PhaseDone
	PhaseError
)

type (
	PlanReadyMsg struct {
		Plan domain.Plan
	}
	ProgressMsg struct {
		Current int
		Total   int
		File    string
	}
	DoneMsg struct {
		Lines []string
	}
	ConfirmMsg struct {
		Confirmed bool
	}
	ErrorMsg struct {
		Err error
	}
	tickMsg time.Time
)

type ProgressFunc func(current, total int, name string)

// PlanFunc builds the plan shown for confirmation.
type PlanFunc func(ctx context.Context) (domain.Plan, error)

// ExecuteFunc carries out plan, reporting each finished operation to progress.
type ExecuteFunc func(ctx context.Context, plan domain.Plan, progress ProgressFunc) ([]string, error)

type Config struct {
	SourceDir      string
	DestinationDir string
	From           string
	To             string
	Mode           domain.Mode
	DryRun         bool
	Output         io.Writer
	Plan           PlanFunc
	Execute        ExecuteFunc
}

// Result is what the TUI leaves behind once it exits.
type Result struct {
	Lines    []string
	Declined bool
}

type Model struct {
	config           Config
	ctx              context.Context
	send             func(tea.Msg)
	Phase            Phase
	Plan             domain.Plan
	Lines            []string
	spinner          spinner.Model
	progress         progress.Model
	current          int
	total            int
	currentFile      string
	confirmSelection bool // true = yes, false = no
	Declined         bool
	Err              error
	Quitting         bool
	width            int
}

func NewModel(ctx context.Context, cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		ctx:      ctx,
		Phase:    PhasePlanning,
		spinner:  s,
		progress: p,
		width:    80,
	}
}

// Run shows the plan, asks before changing any file and reports progress
// while the plan executes.
func Run(ctx context.Context, cfg Config) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}

	model := NewModel(ctx, cfg)
	var program *tea.Program
	model.send = func(msg tea.Msg) { program.Send(msg) }
	program = tea.NewProgram(model, opts...)

	final, err := program.Run()
	if err != nil {
		return Result{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("unexpected model %T", final)
	}
	if m.Err != nil {
		return Result{}, m.Err
	}
	if m.Phase == PhaseExecuting {
		return Result{}, context.Canceled
	}
	if m.Phase != PhaseDone {
		return Result{Declined: true}, nil
	}
	return Result{Lines: m.Lines, Declined: m.Declined}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.planCmd())
}

func (m Model) planCmd() tea.Cmd {
	return func() tea.Msg {
		if m.config.Plan == nil {
			return ErrorMsg{Err: fmt.Errorf("tui requires a plan func")}
		}
		plan, err := m.config.Plan(m.ctx)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return PlanReadyMsg{Plan: plan}
	}
}

func (m Model) executeCmd() tea.Cmd {
	return func() tea.Msg {
		if m.config.Execute == nil {
			return ErrorMsg{Err: fmt.Errorf("tui requires an execute func")}
		}
		lines, err := m.config.Execute(m.ctx, m.Plan, func(current, total int, name string) {
			if m.send != nil {
				m.send(ProgressMsg{Current: current, Total: total, File: name})
			}
		})
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return DoneMsg{Lines: lines}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.Phase == PhaseExecuting && msg.String() == "q" {
				return m, nil
			}
			if m.Phase == PhaseConfirm {
				m.Declined = true
			}
			m.Quitting = true
			return m, tea.Quit
		case "left", "h", "y", "Y":
			if m.Phase == PhaseConfirm {
				m.confirmSelection = true
			}
		case "right", "l", "n", "N":
			if m.Phase == PhaseConfirm {
				m.confirmSelection = false
			}
		case "enter":
			if m.Phase == PhaseConfirm {
				confirmed := m.confirmSelection
				return m, func() tea.Msg { return ConfirmMsg{Confirmed: confirmed} }
			}
			if m.Phase == PhaseDone || m.Phase == PhaseError {
				return m, tea.Quit
			}
		}

	case PlanReadyMsg:
		m.Plan = msg.Plan
		m.total = len(msg.Plan.Operations)
		// Dry runs and empty plans change nothing, so there is nothing to confirm.
		if m.config.DryRun || msg.Plan.Empty() {
			m.Phase = PhaseExecuting
			return m, m.executeCmd()
		}
		m.Phase = PhaseConfirm
		return m, nil

	case ConfirmMsg:
		if !msg.Confirmed {
			m.Declined = true
			m.Quitting = true
			return m, tea.Quit
		}
		m.Phase = PhaseExecuting
		return m, tea.Batch(tickCmd(), m.spinner.Tick, m.executeCmd())

	case ProgressMsg:
		m.current = msg.Current
		m.total = msg.Total
		m.currentFile = msg.File
		return m, nil

	case DoneMsg:
		m.Phase = PhaseDone
		m.Lines = msg.Lines
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhasePlanning || m.Phase == PhaseExecuting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tickMsg:
		if m.Phase == PhaseExecuting {
			var cmds []tea.Cmd
			if m.total > 0 {
				cmds = append(cmds, m.progress.SetPercent(float64(m.current)/float64(m.total)))
			}
			cmds = append(cmds, tickCmd())
			return m, tea.Batch(cmds...)
		}
	}

	return m, nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhasePlanning:
		b.WriteString(fmt.Sprintf("%s Reading source folder...", m.spinner.View()))
	case PhaseConfirm:
		b.WriteString(m.renderPreview())
		b.WriteString("\n")
		b.WriteString(m.renderConfirmPrompt())
	case PhaseExecuting:
		b.WriteString(m.renderPreview())
		b.WriteString("\n")
		b.WriteString(m.renderExecution())
	case PhaseDone:
		b.WriteString(m.renderPreview())
		b.WriteString("\n")
		b.WriteString(m.renderCompletion())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render(iconClock + " filetz")
	subtitle := subtitleStyle.Render(fmt.Sprintf("%s %s %s, %s", m.config.From, iconArrow, m.config.To, m.config.Mode))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		dimStyle.Render(fmt.Sprintf("%s Source: %s", iconFolder, shortenPath(m.config.SourceDir))),
		dimStyle.Render(fmt.Sprintf("%s Target: %s", iconFolder, shortenPath(m.config.DestinationDir))),
	)
}

func (m Model) renderPreview() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Files to Rename"))
	b.WriteString("\n\n")

	if m.Plan.Empty() {
		b.WriteString(dimStyle.Render("  No files to process"))
		b.WriteString("\n")
	} else {
		for _, line := range formatOperations(m.Plan.Operations, 4) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  %d\n", statLabelStyle.Render("Listed:"), m.Plan.Listed))
	b.WriteString(fmt.Sprintf("  %s  %d\n", statLabelStyle.Render("To rename:"), len(m.Plan.Operations)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Skipped:"), dimStyle.Render(fmt.Sprintf("%s %d", iconSkipped, m.Plan.Skipped))))

	if m.config.DryRun {
		b.WriteString(highlightBoxStyle.Render("🔍 Dry Run - No files were changed"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderConfirmPrompt() string {
	verb := "Copy"
	if m.config.Mode == domain.ModeMove {
		verb = "Move"
	}
	prompt := confirmPromptStyle.Render(fmt.Sprintf("%s %d files?", verb, len(m.Plan.Operations)))

	var yesBtn, noBtn string
	if m.confirmSelection {
		yesBtn = highlightBoxStyle.Background(lipgloss.Color("#2D5A27")).Render(" Yes ")
		noBtn = boxStyle.Render(" No ")
	} else {
		yesBtn = boxStyle.Render(" Yes ")
		noBtn = highlightBoxStyle.Background(lipgloss.Color("#5A2727")).Render(" No ")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, yesBtn, "  ", noBtn)
	return lipgloss.JoinVertical(lipgloss.Left, prompt, "", buttons)
}

func (m Model) renderExecution() string {
	var b strings.Builder

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.current) / float64(m.total)
	}

	b.WriteString(fmt.Sprintf("  %s Working...\n\n", m.spinner.View()))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		targetStyle.Render(fmt.Sprintf("%d/%d files", m.current, m.total)),
		dimStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))
	if m.currentFile != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", iconArrow, sourceStyle.Render(m.currentFile)))
	}
	return b.String()
}

func (m Model) renderCompletion() string {
	if m.config.DryRun || m.Plan.Empty() {
		return successStyle.Render(fmt.Sprintf("%s Nothing was changed.", iconSuccess))
	}
	return successStyle.Render(fmt.Sprintf("%s %d files done.", iconSuccess, len(m.Plan.Operations)))
}

func (m Model) renderError() string {
	msg := errorStyle.Render(fmt.Sprintf("%s Error: %s", iconError, m.Err.Error()))
	return highlightBoxStyle.BorderForeground(errorColor).Render(msg)
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhasePlanning:
		help = "Press q to quit"
	case PhaseConfirm:
		help = "← → or y/n to select • Enter to confirm • q to quit"
	case PhaseExecuting:
		help = "Working... Please wait"
	case PhaseDone:
		help = "Press Enter to exit"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

// formatOperations shows the first and last operations when there are more than maxItems.
func formatOperations(ops []domain.Operation, maxItems int) []string {
	if len(ops) <= maxItems {
		lines := make([]string, 0, len(ops))
		for _, op := range ops {
			lines = append(lines, formatOperation(op))
		}
		return lines
	}

	half := maxItems / 2
	lines := make([]string, 0, maxItems+1)
	for _, op := range ops[:half] {
		lines = append(lines, formatOperation(op))
	}
	lines = append(lines, dimStyle.Render(fmt.Sprintf("... %d more files ...", len(ops)-maxItems)))
	for _, op := range ops[len(ops)-half:] {
		lines = append(lines, formatOperation(op))
	}
	return lines
}

func formatOperation(op domain.Operation) string {
	return fmt.Sprintf("%s %s %s", sourceStyle.Render(op.SourceName), iconArrow, targetStyle.Render(op.TargetName))
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
