package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/getaltair/altair-sub003/internal/engine"
	"github.com/getaltair/altair-sub003/internal/ui"
)

func newEnergyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "energy",
		Short: "Show or set the daily energy budget",
	}
	cmd.AddCommand(newEnergyShowCmd(), newEnergySetCmd())
	return cmd
}

func newEnergyShowCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a day's budget and derived spend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if date == "" {
				date = svc.Today()
			}
			b, err := svc.GetBudget(ctx, flagOwner, date)
			if err != nil {
				return err
			}
			printBudget(cmd, b)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD, default today)")

	return cmd
}

func newEnergySetCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "set <budget>",
		Short: "Set a day's energy budget (1-10)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("budget is required")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("budget must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			budget, _ := strconv.Atoi(args[0])
			if date == "" {
				date = svc.Today()
			}
			b, err := svc.SetBudget(ctx, flagOwner, date, budget)
			if err != nil {
				return err
			}
			printBudget(cmd, b)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to set (YYYY-MM-DD, default today)")

	return cmd
}

func printBudget(cmd *cobra.Command, b *engine.DayBudget) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Heading(ui.IconBolt, "Energy — "+b.Day))
	fmt.Fprintln(out, ui.LabelValue("Budget", b.Budget))
	fmt.Fprintln(out, ui.LabelValue("Spent", b.Spent))
	fmt.Fprintln(out, ui.LabelValue("Remaining", b.Remaining))
	if b.OverBudget {
		fmt.Fprintln(out, ui.BadgeOverBudget)
	}
}
