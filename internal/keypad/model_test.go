package keypad_test

import (
	"testing"

	"github.com/vik-ma/local-lift-log-sub002/internal/keypad"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeKeys(t *testing.T, m keypad.Model, msgs ...tea.Msg) keypad.Model {
	t.Helper()
	var model tea.Model = m
	for _, msg := range msgs {
		model, _ = model.Update(msg)
	}
	updated, ok := model.(keypad.Model)
	require.True(t, ok)
	return updated
}

func keys(text string) []tea.Msg {
	var msgs []tea.Msg
	for _, r := range text {
		msgs = append(msgs, runes(string(r)))
	}
	return msgs
}

func TestModel_AddsExpressions(t *testing.T) {
	m := keypad.NewModel(sumcalc.NewSession(units.Weight, "kg"))

	m = typeKeys(t, m, keys("20x2")...)
	assert.Equal(t, "20*2", m.Expression())

	m = typeKeys(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.Session().Items, 1)
	assert.Equal(t, 40.0, m.Session().Items[0].Value)
	assert.Equal(t, "20*2", m.Session().Items[0].SourceExpression)
	assert.Equal(t, "0", m.Expression())

	m = typeKeys(t, m, append(keys("(2.5+2.5)"), tea.KeyMsg{Type: tea.KeyEnter})...)
	require.Len(t, m.Session().Items, 2)
	assert.Equal(t, 45.0, sumcalc.Aggregate(m.Session()).Total)
	assert.Contains(t, m.View(), "Total: 45 kg")
}

func TestModel_RejectsInvalidCalculation(t *testing.T) {
	m := keypad.NewModel(sumcalc.NewSession(units.Weight, "kg"))

	m = typeKeys(t, m, append(keys("5/0"), tea.KeyMsg{Type: tea.KeyEnter})...)
	assert.Empty(t, m.Session().Items)
	assert.Equal(t, "invalid calculation", m.Status())
	assert.Equal(t, "5/0", m.Expression())

	m = typeKeys(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "5", m.Expression())
	assert.Empty(t, m.Status())

	m = typeKeys(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "0", m.Expression())
}

func TestModel_UnitAndListKeys(t *testing.T) {
	m := keypad.NewModel(sumcalc.NewSession(units.Weight, "kg"))
	m = typeKeys(t, m, append(keys("20"), tea.KeyMsg{Type: tea.KeyEnter})...)
	m = typeKeys(t, m, append(keys("10"), tea.KeyMsg{Type: tea.KeyEnter})...)

	m = typeKeys(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "lbs", m.Session().ActiveUnit)
	assert.Equal(t, 44.09, m.Session().Items[0].Value)

	m = typeKeys(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "kg", m.Session().ActiveUnit)

	m = typeKeys(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	require.Len(t, m.Session().Items, 1)

	m = typeKeys(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Empty(t, m.Session().Items)
	assert.Contains(t, m.View(), "no items")
}

func TestModel_Quit(t *testing.T) {
	m := keypad.NewModel(sumcalc.NewSession(units.Distance, "km"))
	model, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, model.View())
}
