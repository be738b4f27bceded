package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/username/daypicker/internal/calendar"
	"github.com/username/daypicker/internal/config"
	"github.com/username/daypicker/internal/tui"
	"github.com/username/daypicker/pkg/dateutil"
)

func addPickerFlags(cmd *cobra.Command, o *pickerOverrides) {
	cmd.Flags().StringVar(&o.month, "month", "", "First month to show (YYYY-MM)")
	cmd.Flags().IntVar(&o.months, "months", 0, "Number of months to show")
	cmd.Flags().BoolVar(&o.outside, "outside", false, "Show days of adjacent months")
}

func showCmd() *cobra.Command {
	var overrides pickerOverrides
	var listDays bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print month grids",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			picker, err := initializePicker(cfg, overrides)
			if err != nil {
				return err
			}

			grids, err := picker.Months()
			if err != nil {
				return fmt.Errorf("failed to build months: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, newRenderer(picker).Months(grids, dateutil.Today()))
			if listDays {
				fmt.Fprintln(out)
				printDays(out, grids)
			}
			return nil
		},
	}

	addPickerFlags(cmd, &overrides)
	cmd.Flags().BoolVar(&listDays, "days", false, "List the modifiers of every day")

	return cmd
}

// printDays writes one line per in-month day that carries at least one modifier
func printDays(w io.Writer, grids []calendar.MonthGrid) {
	for _, g := range grids {
		for _, cell := range g.Days() {
			if !cell.Focusable() || len(cell.Modifiers) == 0 {
				continue
			}
			fmt.Fprintf(w, "%s  %s\n", cell.Date.Format("2006-01-02"), strings.Join(cell.Modifiers, ", "))
		}
	}
}

func browseCmd() *cobra.Command {
	var overrides pickerOverrides

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse months interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("browse needs an interactive terminal, use show instead")
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.Log.File == "" {
				// console logs would corrupt the alternate screen
				logger = zap.NewNop()
			}

			picker, err := initializePicker(cfg, overrides)
			if err != nil {
				return err
			}

			return tui.Run(picker, newRenderer(picker), logger)
		},
	}

	addPickerFlags(cmd, &overrides)

	return cmd
}
