package keypad

import (
	"fmt"

	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"

	tea "github.com/charmbracelet/bubbletea"
)

func unitsOf(session sumcalc.Session) []string {
	return units.Units(session.Group)
}

// Run starts the interactive calculator and returns the final session.
func Run(session sumcalc.Session, opts ...tea.ProgramOption) (sumcalc.Session, error) {
	final, err := tea.NewProgram(NewModel(session), opts...).Run()
	if err != nil {
		return session, fmt.Errorf("run keypad: %w", err)
	}
	model, ok := final.(Model)
	if !ok {
		return session, fmt.Errorf("unexpected keypad model %T", final)
	}
	return model.Session(), nil
}
