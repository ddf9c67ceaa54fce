package main

import (
	"encoding/json"
	"fmt"

	"github.com/vik-ma/local-lift-log-sub002/internal/presets"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) decodeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "decode <calculation-string>",
		Short: "Restore a calculation string",
		Long: `Restore a stored calculation string such as "n[20]x2,e[1]x1|1.5" against the
local presets and print its items and totals. Unknown tokens are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			group, unit, err := groupAndUnit(cmd)
			if err != nil {
				return err
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					log.Warnf("close preset store: %s", err)
				}
			}()

			lookup, err := presets.LoadLookup(cmd.Context(), store, group)
			if err != nil {
				return err
			}

			session, skipped := sumcalc.DecodeSession(args[0], unit, group, lookup)
			if skipped > 0 {
				log.Warnf("%d tokens could not be restored", skipped)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Session sumcalc.Session `json:"session"`
					Totals  sumcalc.Totals  `json:"totals"`
					Skipped int             `json:"skipped"`
				}{session, sumcalc.Aggregate(session), skipped})
			}

			printSession(cmd.OutOrStdout(), session)
			if skipped > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(fmt.Sprintf("%d skipped", skipped)))
			}
			return nil
		},
	}

	addGroupFlags(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the session as JSON")

	return cmd
}
