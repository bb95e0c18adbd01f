package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/wippyai/anybox/bench"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	groupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4"))

	inlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	refStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	heapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	tableBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

func classStyle(class string) lipgloss.Style {
	switch class {
	case "inline":
		return inlineStyle
	case "inline-ref":
		return refStyle
	default:
		return heapStyle
	}
}

type resultMsg bench.Result

type runMsg bench.Run

type doneMsg struct {
	err error
}

type interactiveModel struct {
	ctx     context.Context
	cancel  context.CancelFunc
	suite   *bench.Suite
	rep     *bench.Reporter
	cfg     bench.Config
	err     error
	spinner spinner.Model
	table   table.Model
	last    bench.Result
	loop    int
	results int
	done    bool
}

func newInteractiveModel(ctx context.Context, cfg bench.Config, suite *bench.Suite) *interactiveModel {
	ctx, cancel := context.WithCancel(ctx)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "Group", Width: 12},
			{Title: "Container", Width: 16},
			{Title: "Payload", Width: 15},
			{Title: "Construct ns", Width: 12},
			{Title: "Destroy ns", Width: 10},
			{Title: "Get ns", Width: 8},
			{Title: "Allocs", Width: 6},
		}),
		table.WithFocused(true),
		table.WithHeight(len(suite.Cases)+1),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Bold(false)
	tbl.SetStyles(styles)

	return &interactiveModel{
		ctx:     ctx,
		cancel:  cancel,
		suite:   suite,
		cfg:     cfg,
		spinner: sp,
		table:   tbl,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runSuite)
}

func (m *interactiveModel) runSuite() tea.Msg {
	return doneMsg{err: m.suite.Run(m.ctx, m.cfg, m.rep)}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancel()
			return m, tea.Quit
		case "s":
			if !m.done {
				m.cancel()
			}
			return m, nil
		}

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resultMsg:
		m.last = bench.Result(msg)
		m.results++
		return m, nil

	case runMsg:
		m.loop = msg.Loop
		m.table.SetRows(resultRows(msg.Results))
		return m, nil

	case doneMsg:
		m.done = true
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func resultRows(results []bench.Result) []table.Row {
	rows := make([]table.Row, 0, len(results))
	for _, r := range results {
		row := table.Row{r.Group, r.Container, r.Payload, "-", "-", "-", fmt.Sprintf("%.2f", r.Allocs)}
		if r.Measure == bench.MeasureGet {
			row[5] = fmt.Sprintf("%.3f", r.Get)
		} else {
			row[3] = fmt.Sprintf("%.3f", r.Construct)
			row[4] = fmt.Sprintf("%.3f", r.Destroy)
		}
		if row[2] == "" {
			row[2] = "-"
		}
		rows = append(rows, row)
	}
	return rows
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("anybench"))
	b.WriteString(fmt.Sprintf(" times=%d num=%d", m.cfg.Times, m.cfg.Num))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	case !m.done:
		b.WriteString(m.spinner.View())
		b.WriteString(fmt.Sprintf(" loop %d ", m.loop+1))
		if m.results > 0 {
			b.WriteString(groupStyle.Render(m.last.Group))
			b.WriteString(" ")
			b.WriteString(m.last.Container)
		}
		b.WriteString("\n\n")
	default:
		b.WriteString(fmt.Sprintf("finished after %d loops\n\n", m.loop))
	}

	if m.loop > 0 {
		b.WriteString(tableBorder.Render(m.table.View()))
		b.WriteString("\n\n")
	}

	if m.done {
		b.WriteString(helpStyle.Render("↑/↓ scroll • q quit"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ scroll • s stop • q quit"))
	}
	return b.String()
}

func runInteractive(ctx context.Context, cfg bench.Config, suite *bench.Suite, opts []bench.ReporterOption) error {
	// log output would tear the alternate screen
	installLogger(zap.NewNop())

	m := newInteractiveModel(ctx, cfg, suite)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen())

	opts = append(opts,
		bench.WithLogger(zap.NewNop()),
		bench.OnResult(func(r bench.Result) { p.Send(resultMsg(r)) }),
		bench.OnRun(func(r bench.Run) { p.Send(runMsg(r)) }),
	)
	rep, err := bench.NewReporter(opts...)
	if err != nil {
		return err
	}
	m.rep = rep

	if _, err := p.Run(); err != nil {
		return err
	}
	return m.err
}
