package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/wonny/covid-europe/internal/contracts"
	"github.com/wonny/covid-europe/internal/highlight"
	"github.com/wonny/covid-europe/internal/quarantine"
	"github.com/wonny/covid-europe/internal/report"
)

// Styles holds the lipgloss styles of the terminal views
type Styles struct {
	renderer *lipgloss.Renderer

	Title   lipgloss.Style
	Heading lipgloss.Style
	Body    lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles builds styles bound to a renderer, so color output follows the
// capabilities of the destination
func NewStyles(re *lipgloss.Renderer) Styles {
	return Styles{
		renderer: re,
		Title:    re.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3")).MarginBottom(1),
		Heading:  re.NewStyle().Bold(true).Underline(true),
		Body:     re.NewStyle(),
		Bold:     re.NewStyle().Bold(true),
		Muted:    re.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true),
		Error:    re.NewStyle().Bold(true).Foreground(lipgloss.Color("#e53935")),
	}
}

// Cell returns the style of a highlighted cell
func (s Styles) Cell(c highlight.Color) lipgloss.Style {
	st := s.renderer.NewStyle().Padding(0, 1)
	if c == "" {
		return st
	}
	return st.Background(lipgloss.Color(c.Hex())).Foreground(lipgloss.Color("#000000"))
}

// Rule returns the style of a rule line
func (s Styles) Rule(q contracts.Quarantine) lipgloss.Style {
	switch q {
	case contracts.QuarantineNone:
		return s.Bold.Foreground(lipgloss.Color(highlight.Green.Hex()))
	case contracts.QuarantineHome:
		return s.Bold.Foreground(lipgloss.Color(highlight.Amber.Hex()))
	case contracts.QuarantineHotel:
		return s.Bold.Foreground(lipgloss.Color(highlight.Red.Hex()))
	default:
		return s.Muted
	}
}

// Terminal renders reports as styled text
type Terminal struct {
	styles Styles
}

// NewTerminal creates a terminal renderer for w
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{styles: NewStyles(lipgloss.NewRenderer(w))}
}

// NewTerminalWithStyles creates a terminal renderer with explicit styles
func NewTerminalWithStyles(styles Styles) *Terminal {
	return &Terminal{styles: styles}
}

// Write renders the report to w
func (t *Terminal) Write(w io.Writer, r *report.Report) error {
	_, err := io.WriteString(w, t.Report(r))
	return err
}

// Report renders the rules and both tables
func (t *Terminal) Report(r *report.Report) string {
	var sb strings.Builder

	sb.WriteString(t.styles.Title.Render(Title))
	sb.WriteString("\n")
	sb.WriteString(t.Rules(r))
	sb.WriteString("\n")
	sb.WriteString(t.Grid(TestingGrid(r.Testing)))
	sb.WriteString(t.Grid(CasesGrid(r.Cases)))

	return sb.String()
}

// Rules renders the quarantine section
func (t *Terminal) Rules(r *report.Report) string {
	var sb strings.Builder

	sb.WriteString(t.styles.Heading.Render(quarantine.Heading))
	sb.WriteString("\n")
	for _, rule := range r.Rules {
		fmt.Fprintf(&sb, "  %s: %s\n", t.styles.Bold.Render(rule.Country), t.styles.Rule(rule.Category).Render(rule.Message))
	}
	sb.WriteString(t.styles.Muted.Render(quarantine.Disclaimer))
	sb.WriteString("\n")
	sb.WriteString(t.styles.Muted.Render(quarantine.Sources))
	sb.WriteString("\n")

	return sb.String()
}

// Grid renders one table
func (t *Terminal) Grid(g Grid) string {
	var sb strings.Builder

	sb.WriteString(t.styles.Heading.Render(g.Title))
	sb.WriteString("\n")

	if len(g.Rows) == 0 {
		sb.WriteString(t.styles.Muted.Render("No rows."))
		sb.WriteString("\n\n")
		return sb.String()
	}

	rows := make([][]string, 0, len(g.Rows))
	for _, row := range g.Rows {
		texts := make([]string, len(g.Headers))
		for i, cell := range row {
			if i < len(texts) {
				texts[i] = cell.Text
			}
		}
		rows = append(rows, texts)
	}

	header := t.styles.Bold.Padding(0, 1)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.styles.Muted).
		Headers(g.Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if row < len(g.Rows) && col < len(g.Rows[row]) {
				return t.styles.Cell(g.Rows[row][col].Color)
			}
			return t.styles.Cell("")
		})

	sb.WriteString(tbl.String())
	sb.WriteString("\n\n")

	return sb.String()
}

// Errors renders the user facing lines of a pipeline error
func (t *Terminal) Errors(err error) string {
	var sb strings.Builder
	for i, line := range ErrorLines(err) {
		if i == 0 {
			sb.WriteString(t.styles.Error.Render(line))
		} else {
			sb.WriteString(t.styles.Body.Render(line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
