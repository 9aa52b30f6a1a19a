package display

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/handtracker/internal/game"
)

// reportMsg delivers a report to the running program
type reportMsg Report

// TUIModel is the Bubble Tea model for the live table view: the table
// sections on top and a scrollable action log below.
type TUIModel struct {
	view     view
	log      viewport.Model
	lines    []string
	snapshot game.Snapshot
	passes   int
	quitting bool

	width  int
	height int
}

// NewTUIModel creates a model rendering with styles
func NewTUIModel(styles *Styles, holeCards bool) *TUIModel {
	vp := viewport.New(80, 10)
	vp.SetContent("")
	return &TUIModel{
		view: view{styles: styles, holeCards: holeCards},
		log:  vp,
	}
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return nil
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		case "home", "g":
			m.log.GotoTop()
			return m, nil
		case "end", "G":
			m.log.GotoBottom()
			return m, nil
		}

	case reportMsg:
		m.apply(Report(msg))
		return m, nil
	}

	var cmd tea.Cmd
	m.log, cmd = m.log.Update(msg)
	return m, cmd
}

func (m *TUIModel) apply(r Report) {
	m.snapshot = r.Snapshot
	m.passes++
	lines := m.view.pass(r.Pass)
	if len(lines) == 0 {
		return
	}
	m.lines = append(m.lines, lines...)
	m.log.SetContent(strings.Join(m.lines, "\n"))
	if m.log.Height > 0 && m.log.Width > 0 {
		m.log.GotoBottom()
	}
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}
	s := m.snapshot
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.view.game(s),
		m.view.board(s),
		m.view.players(s),
		m.view.round(s),
		m.view.styles.Pane.Render(m.log.View()),
		m.view.styles.Info.Render("↑↓ scroll • Home/End • q to quit"),
	)
}

// Lines returns the action log shown in the lower pane
func (m *TUIModel) Lines() []string {
	return m.lines
}

func (m *TUIModel) updateDimensions() {
	if m.height <= 0 || m.width <= 0 {
		return
	}
	// header, board, round and help lines plus the players table
	tableHeight := 4 + len(m.snapshot.Players) + 4
	logHeight := m.height - tableHeight - 2
	if logHeight < 3 {
		logHeight = 3
	}
	m.log.Width = m.width - 4
	m.log.Height = logHeight
}

// TUI is a Sink driving a full-screen Bubble Tea program
type TUI struct {
	model   *TUIModel
	program *tea.Program
}

// NewTUI creates the sink. The program stops when ctx is cancelled.
func NewTUI(ctx context.Context, holeCards bool, opts ...tea.ProgramOption) *TUI {
	model := NewTUIModel(NewStyles(NewRenderer(os.Stdout, true)), holeCards)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	return &TUI{
		model:   model,
		program: tea.NewProgram(model, opts...),
	}
}

// Render implements Sink. It blocks until the program accepts the report.
func (t *TUI) Render(r Report) error {
	t.program.Send(reportMsg(r))
	return nil
}

// Run runs the program until the user quits or the context is cancelled
func (t *TUI) Run() error {
	if _, err := t.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
