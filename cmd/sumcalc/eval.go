package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/expr"

	"github.com/spf13/cobra"
)

var errInvalidCalculation = errors.New("invalid calculation")

func (a *app) evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate a calculation",
		Long:  `Evaluate an arithmetic calculation (+ - * / and parentheses) the way the calculator keypad does.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, "")
			validation := expr.Validate(text)
			if !validation.IsValid {
				return fmt.Errorf("%w: %s", errInvalidCalculation, text)
			}
			fmt.Fprintln(cmd.OutOrStdout(), sumcalc.FormatNumber(*validation.Result))
			return nil
		},
	}
}
