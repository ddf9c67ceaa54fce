package keypad

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/expr"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title   lipgloss.Style
	item    lipgloss.Style
	total   lipgloss.Style
	input   lipgloss.Style
	invalid lipgloss.Style
	muted   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		item:    lipgloss.NewStyle().PaddingLeft(2),
		total:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575")),
		input:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		invalid: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}

// Model is an interactive sum calculator: keys build an expression, enter
// adds it to the list, and the running total is shown below the items.
type Model struct {
	builder  expr.Builder
	session  sumcalc.Session
	status   string
	styles   styles
	width    int
	height   int
	quitting bool
}

func NewModel(session sumcalc.Session) Model {
	return Model{
		builder: expr.NewBuilder(),
		session: session,
		styles:  defaultStyles(),
	}
}

func (m Model) Session() sumcalc.Session {
	return m.session
}

func (m Model) Expression() string {
	return m.builder.Text
}

func (m Model) Status() string {
	return m.status
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	m.status = ""

	switch key {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "enter", "=":
		m.addExpression()
	case "esc":
		m.builder = m.builder.Clear()
	case "ctrl+d":
		m.session = m.session.Remove(len(m.session.Items) - 1)
	case "ctrl+l":
		m.session = m.session.Clear()
	case "tab":
		m.cycleUnit()
	case "x":
		m.builder = m.builder.Apply("*")
	default:
		m.builder = m.builder.Apply(key)
	}

	return m, nil
}

func (m *Model) addExpression() {
	item, ok := sumcalc.NewExpressionItem(m.builder.Text, m.session.ActiveUnit, "")
	if !ok {
		m.status = "invalid calculation"
		return
	}
	m.session = m.session.Append(item)
	m.builder = m.builder.Clear()
}

func (m *Model) cycleUnit() {
	available := unitsOf(m.session)
	if len(available) < 2 {
		return
	}
	idx := slices.Index(available, m.session.ActiveUnit)
	next := available[(idx+1)%len(available)]
	m.session = sumcalc.ConvertSession(m.session, next)
	m.status = "switched to " + next
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		m.styles.title.Render(fmt.Sprintf("Sum Calculator (%s)", m.session.ActiveUnit)),
		"",
	}

	if len(m.session.Items) == 0 {
		lines = append(lines, m.styles.muted.Render("  no items"))
	}
	for i, item := range m.session.Items {
		line := fmt.Sprintf("%d. %s = %s %s", i+1, item.Label, sumcalc.FormatNumber(item.Value), item.Unit)
		if multiplier := item.EffectiveMultiplier(); multiplier != 1 {
			line += fmt.Sprintf(" x%s", sumcalc.FormatNumber(multiplier))
		}
		lines = append(lines, m.styles.item.Render(line))
	}

	totals := sumcalc.Aggregate(m.session)
	lines = append(lines,
		"",
		m.styles.total.Render(fmt.Sprintf("Total: %s %s", sumcalc.FormatNumber(totals.Total), m.session.ActiveUnit)),
		m.renderInput(),
	)

	if m.status != "" {
		lines = append(lines, m.styles.invalid.Render(m.status))
	}
	lines = append(lines, m.styles.muted.Render(
		"[0-9 + - * / . ( )] type | [enter] add | [esc] clear | [tab] unit | [ctrl+d] remove last | [q] quit",
	))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderInput() string {
	preview := ""
	if validation := expr.Validate(m.builder.Text); validation.IsValid {
		preview = " = " + sumcalc.FormatNumber(*validation.Result)
	}
	return m.styles.input.Render(strings.TrimSpace(m.builder.Text + preview))
}
