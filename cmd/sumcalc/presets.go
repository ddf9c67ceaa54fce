package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/vik-ma/local-lift-log-sub002/internal/presets"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) presetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage equipment weight and distance presets",
	}

	cmd.PersistentFlags().StringP("group", "g", "weight", "preset group (weight, distance)")

	cmd.AddCommand(a.listPresetsCmd())
	cmd.AddCommand(a.seedPresetsCmd())
	cmd.AddCommand(a.addPresetCmd())
	cmd.AddCommand(a.deletePresetCmd())

	return cmd
}

func presetGroup(cmd *cobra.Command) (units.Group, error) {
	groupName, _ := cmd.Flags().GetString("group")
	return units.ParseGroup(groupName)
}

// withStore opens the preset store for the duration of fn.
func (a *app) withStore(cmd *cobra.Command, fn func(store presets.Store) error) error {
	store, err := a.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warnf("close preset store: %s", err)
		}
	}()
	return fn(store)
}

func (a *app) listPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List presets of a group",
		RunE: func(cmd *cobra.Command, _ []string) error {
			group, err := presetGroup(cmd)
			if err != nil {
				return err
			}

			return a.withStore(cmd, func(store presets.Store) error {
				list, err := store.List(cmd.Context(), group)
				if err != nil {
					return err
				}
				if len(list) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No presets found. Use 'sumcalc presets seed' to add the defaults."))
					return nil
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					headerStyle.Render("ID"),
					headerStyle.Render("Name"),
					headerStyle.Render("Value"),
					headerStyle.Render("Favorite"),
				)
				for _, p := range list {
					favorite := ""
					if p.Favorite {
						favorite = "*"
					}
					fmt.Fprintf(w, "%d\t%s\t%s %s\t%s\n", p.ID, p.Name, sumcalc.FormatNumber(p.Magnitude), p.Unit, favorite)
				}
				return w.Flush()
			})
		},
	}
}

func (a *app) seedPresetsCmd() *cobra.Command {
	var imperial bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add the default presets when the group has none",
		RunE: func(cmd *cobra.Command, _ []string) error {
			group, err := presetGroup(cmd)
			if err != nil {
				return err
			}

			return a.withStore(cmd, func(store presets.Store) error {
				added, err := presets.Seed(cmd.Context(), store, group, !imperial)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %d %s presets\n", added, group)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&imperial, "imperial", false, "seed lbs / mi presets")

	return cmd
}

func (a *app) addPresetCmd() *cobra.Command {
	var (
		unit     string
		favorite bool
	)

	cmd := &cobra.Command{
		Use:   "add <name> <value>",
		Short: "Add a preset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			group, err := presetGroup(cmd)
			if err != nil {
				return err
			}
			magnitude, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid value [%s]: %w", args[1], err)
			}
			if unit == "" {
				unit = units.Units(group)[0]
			}

			return a.withStore(cmd, func(store presets.Store) error {
				added, err := store.Add(cmd.Context(), sumcalc.Preset{
					Name:      args[0],
					Magnitude: magnitude,
					Unit:      unit,
					Group:     group,
					Favorite:  favorite,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added preset %d: %s\n", added.ID, added.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&unit, "unit", "u", "", "unit of the value (default: first unit of the group)")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "list the preset first")

	return cmd
}

func (a *app) deletePresetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			group, err := presetGroup(cmd)
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid preset id [%s]: %w", args[0], err)
			}

			return a.withStore(cmd, func(store presets.Store) error {
				if err := store.Delete(cmd.Context(), group, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted preset %d\n", id)
				return nil
			})
		},
	}
}
