package main

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"mediapair/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify directories, free space and the library database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg)
			fmt.Fprintln(cmd.OutOrStdout(), renderChecks(results))
			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d check(s) failed", len(failed))
			}
			return nil
		},
	}
}

func renderChecks(results []preflight.Result) string {
	tw := newTable(table.Row{"Check", "Status", "Detail"})
	for _, r := range results {
		status := "ok"
		if !r.Passed {
			status = "FAIL"
		}
		tw.AppendRow(table.Row{r.Name, status, r.Detail})
	}
	return tw.Render()
}

// preflightError folds failed checks into one error.
func preflightError(results []preflight.Result) error {
	var errs []error
	for _, r := range preflight.Failed(results) {
		errs = append(errs, fmt.Errorf("%s: %s", r.Name, r.Detail))
	}
	return errors.Join(errs...)
}
