package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pranshuparmar/whichshell/pkg/model"
)

// DetectFunc runs one detection. The inspector calls it on start and on
// every refresh.
type DetectFunc func(ctx context.Context) (model.Result, error)

type Model struct {
	ctx     context.Context
	detect  DetectFunc
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	table   table.Model

	loading  bool
	result   model.Result
	err      error
	width    int
	quitting bool
}

func New(ctx context.Context, detect DetectFunc) Model {
	columns := []table.Column{
		{Title: "PID", Width: 8},
		{Title: "Name", Width: 14},
		{Title: "Shell", Width: 6},
		{Title: "Argv0", Width: 48},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = tableHeaderStyle
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorSelected).
		Bold(false)
	t.SetStyles(s)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	return Model{
		ctx:     ctx,
		detect:  detect,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		table:   t,
		loading: true,
	}
}

// Start runs the inspector until the user quits.
func Start(ctx context.Context, detect DetectFunc) error {
	p := tea.NewProgram(New(ctx, detect), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running tui: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runDetect())
}

func (m Model) runDetect() tea.Cmd {
	ctx, detect := m.ctx, m.detect
	return func() tea.Msg {
		res, err := detect(ctx)
		return resultMsg{result: res, err: err}
	}
}

func (m *Model) setRows(steps []model.Step) {
	rows := make([]table.Row, 0, len(steps))
	for _, s := range steps {
		mark := ""
		if s.Matched {
			mark = "yes"
		}
		rows = append(rows, table.Row{fmt.Sprint(s.PID), s.Name, mark, s.Argv0})
	}
	m.table.SetRows(rows)
	if len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}
