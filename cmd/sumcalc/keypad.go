package main

import (
	"errors"
	"fmt"

	"github.com/vik-ma/local-lift-log-sub002/internal/keypad"
	"github.com/vik-ma/local-lift-log-sub002/internal/presets"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func (a *app) keypadCmd() *cobra.Command {
	var load string

	cmd := &cobra.Command{
		Use:   "keypad",
		Short: "Interactive sum calculator",
		Long: `Type calculations and add them to a list with enter. On exit, the list is
printed as a calculation string that can be restored with 'sumcalc decode' or --load.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			group, unit, err := groupAndUnit(cmd)
			if err != nil {
				return err
			}

			session := sumcalc.NewSession(group, unit)
			if load != "" {
				err := a.withStore(cmd, func(store presets.Store) error {
					lookup, err := presets.LoadLookup(cmd.Context(), store, group)
					if err != nil {
						return err
					}
					var skipped int
					session, skipped = sumcalc.DecodeSession(load, unit, group, lookup)
					if skipped > 0 {
						log.Warnf("%d tokens could not be restored", skipped)
					}
					return nil
				})
				if err != nil {
					return err
				}
			}

			final, err := keypad.Run(session, tea.WithContext(cmd.Context()), tea.WithOutput(cmd.OutOrStdout()))
			if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}

			encoded, err := sumcalc.Encode(final)
			if err != nil {
				for _, e := range multierr.Errors(err) {
					log.Errorf("encode: %s", e)
				}
				return fmt.Errorf("list cannot be stored as a calculation string: %w", err)
			}

			printSession(cmd.OutOrStdout(), final)
			fmt.Fprintln(cmd.OutOrStdout(), encoded)
			return nil
		},
	}

	addGroupFlags(cmd)
	cmd.Flags().StringVar(&load, "load", "", "calculation string to start from")

	return cmd
}
