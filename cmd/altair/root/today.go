package root

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/getaltair/altair-sub003/internal/storage"
	"github.com/getaltair/altair-sub003/internal/ui"
)

func newTodayCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the day's plan: budget, active quest, backlog, routines",
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
			view, err := svc.TodayView(ctx, flagOwner, date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Today — "+view.Day))

			b := view.Budget
			budgetLine := fmt.Sprintf("%d/%d spent, %d remaining", b.Spent, b.Budget, b.Remaining)
			if b.OverBudget {
				budgetLine += " " + ui.BadgeOverBudget
			}
			fmt.Fprintln(out, ui.LabelValue("Energy", budgetLine))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("Now"))
			if view.Active == nil {
				fmt.Fprintln(out, ui.Muted.Render("(no active quest — start one from the backlog)"))
			} else {
				printQuestLine(out, view.Active)
			}
			fmt.Fprintln(out, "")

			if len(view.DueFromRoutines) > 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconLoop+" Due from routines"))
				for i := range view.DueFromRoutines {
					printQuestLine(out, &view.DueFromRoutines[i])
				}
				fmt.Fprintln(out, "")
			}

			fmt.Fprintln(out, ui.H2.Render("Backlog"))
			if len(view.Backlog) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty)"))
			} else {
				for i := range view.Backlog {
					printQuestLine(out, &view.Backlog[i])
				}
			}

			if len(view.CompletedToday) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render(ui.IconDone+" Completed today"))
				for i := range view.CompletedToday {
					printQuestLine(out, &view.CompletedToday[i])
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD, default today)")

	return cmd
}

func printQuestLine(out io.Writer, q *storage.Quest) {
	fmt.Fprintf(out, "- %s %s %s %s\n",
		ui.Dim.Render(q.ID), q.Title, ui.EnergyPips(q.Energy), ui.StatusText(q.Status))
}
