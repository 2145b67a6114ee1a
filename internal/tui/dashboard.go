package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wonny/covid-europe/internal/render"
	"github.com/wonny/covid-europe/internal/report"
)

// ReportBuilder computes reports for a country selection
type ReportBuilder interface {
	Build(ctx context.Context, countries []string) (*report.Report, error)
	Countries(ctx context.Context) ([]string, error)
}

type countriesMsg struct {
	countries []string
	err       error
}

type reportMsg struct {
	seq    int
	report *report.Report
	err    error
}

var toggleKey = key.NewBinding(
	key.WithKeys(" ", "enter"),
	key.WithHelp("space", "toggle country"),
)

var quitKey = key.NewBinding(
	key.WithKeys("q", "ctrl+c"),
	key.WithHelp("q", "quit"),
)

var focusKey = key.NewBinding(
	key.WithKeys("tab"),
	key.WithHelp("tab", "switch focus"),
)

// countryItem adapts a country to list.Item
type countryItem struct {
	name     string
	selected bool
}

func (i countryItem) Title() string {
	if i.selected {
		return "[x] " + i.name
	}
	return "[ ] " + i.name
}
func (i countryItem) Description() string { return "" }
func (i countryItem) FilterValue() string { return i.name }

// Model is the interactive dashboard: a filterable country multi-select on
// the left, the report of the current selection on the right
// ⭐ SSOT: 선택 변경 시 리포트만 다시 계산
type Model struct {
	ctx     context.Context
	builder ReportBuilder
	term    *render.Terminal
	styles  render.Styles

	list     list.Model
	viewport viewport.Model

	countries []string
	selection []string
	seq       int

	focusViewport bool
	loading       bool
	width         int
	height        int
	err           error
}

// New creates the dashboard model with an initial selection
func New(ctx context.Context, builder ReportBuilder, initial []string) Model {
	styles := render.NewStyles(lipgloss.DefaultRenderer())

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Countries"
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = styles.Title.MarginBottom(0)
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{toggleKey, focusKey} }

	vp := viewport.New(80, 20)
	vp.SetContent("Loading datasets...")

	return Model{
		ctx:       ctx,
		builder:   builder,
		term:      render.NewTerminalWithStyles(styles),
		styles:    styles,
		list:      l,
		viewport:  vp,
		selection: report.NormalizeSelection(initial),
		loading:   true,
	}
}

// Run starts the dashboard on the terminal
func Run(ctx context.Context, builder ReportBuilder, initial []string) error {
	p := tea.NewProgram(New(ctx, builder, initial), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// Init loads the country list
func (m Model) Init() tea.Cmd {
	return m.loadCountries()
}

func (m Model) loadCountries() tea.Cmd {
	ctx, builder := m.ctx, m.builder
	return func() tea.Msg {
		countries, err := builder.Countries(ctx)
		return countriesMsg{countries: countries, err: err}
	}
}

// buildReport recomputes the report; datasets come from the loader memo
func (m *Model) buildReport() tea.Cmd {
	m.seq++
	m.loading = true
	seq, ctx, builder := m.seq, m.ctx, m.builder
	selection := append([]string(nil), m.selection...)
	return func() tea.Msg {
		r, err := builder.Build(ctx, selection)
		return reportMsg{seq: seq, report: r, err: err}
	}
}

// Selection returns the selected countries in selection order
func (m Model) Selection() []string {
	return append([]string(nil), m.selection...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)

	case countriesMsg:
		if msg.err != nil {
			m.loading = false
			m.err = msg.err
			m.viewport.SetContent(m.term.Errors(msg.err))
			return m, nil
		}
		m.countries = msg.countries
		cmds = append(cmds, m.list.SetItems(m.items()))
		cmds = append(cmds, m.buildReport())
		return m, tea.Batch(cmds...)

	case reportMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.viewport.SetContent(m.term.Errors(msg.err))
		} else {
			m.viewport.SetContent(m.term.Report(msg.report))
		}
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		filtering := m.list.FilterState() == list.Filtering
		if msg.Type == tea.KeyCtrlC || (!filtering && key.Matches(msg, quitKey)) {
			return m, tea.Quit
		}
		if !filtering && key.Matches(msg, focusKey) {
			m.focusViewport = !m.focusViewport
			return m, nil
		}
		if !filtering && !m.focusViewport && key.Matches(msg, toggleKey) {
			if item, ok := m.list.SelectedItem().(countryItem); ok {
				cmds = append(cmds, m.toggle(item.name), m.buildReport())
			}
			return m, tea.Batch(cmds...)
		}
	}

	_, isKey := msg.(tea.KeyMsg)
	var cmd tea.Cmd
	if !isKey || !m.focusViewport || m.list.FilterState() == list.Filtering {
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	if !isKey || m.focusViewport {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// toggle flips a country in the selection and refreshes its list item
func (m *Model) toggle(name string) tea.Cmd {
	idx := -1
	for i, s := range m.selection {
		if s == name {
			idx = i
			break
		}
	}
	next := make([]string, 0, len(m.selection)+1)
	next = append(next, m.selection...)
	if idx >= 0 {
		next = append(next[:idx], next[idx+1:]...)
	} else {
		next = append(next, name)
	}
	m.selection = next

	for i, c := range m.countries {
		if c == name {
			return m.list.SetItem(i, countryItem{name: c, selected: idx < 0})
		}
	}
	return nil
}

func (m Model) items() []list.Item {
	selected := make(map[string]bool, len(m.selection))
	for _, s := range m.selection {
		selected[s] = true
	}
	items := make([]list.Item, 0, len(m.countries))
	for _, c := range m.countries {
		items = append(items, countryItem{name: c, selected: selected[c]})
	}
	return items
}

func (m *Model) setSize(w, h int) {
	m.width = w
	m.height = h

	listW := 32
	if w < 80 {
		listW = w / 3
	}
	paneH := h - 4
	if paneH < 1 {
		paneH = 1
	}

	m.list.SetSize(listW, paneH)
	m.viewport.Width = w - listW - 4
	m.viewport.Height = paneH
}

// View renders the dashboard
func (m Model) View() string {
	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	active := lipgloss.Color("#2196F3")
	inactive := lipgloss.Color("#444444")

	listStyle, viewStyle := border.BorderForeground(active), border.BorderForeground(inactive)
	if m.focusViewport {
		listStyle, viewStyle = border.BorderForeground(inactive), border.BorderForeground(active)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		listStyle.Render(m.list.View()),
		viewStyle.Render(m.viewport.View()),
	)

	status := fmt.Sprintf(" %d selected: %s", len(m.selection), strings.Join(m.selection, ", "))
	if m.loading {
		status += " • loading"
	}
	help := m.styles.Muted.Render(" space: toggle • /: filter • tab: focus • q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, main, status, help)
}
