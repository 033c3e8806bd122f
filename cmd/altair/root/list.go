package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getaltair/altair-sub003/internal/engine"
	"github.com/getaltair/altair-sub003/internal/ui"
)

func newListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quests by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			qs, err := svc.ListQuestsByStatus(ctx, flagOwner, engine.QuestStatus(status))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconScroll, "Quests ("+status+")"))
			if len(qs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(none)"))
				return nil
			}
			for i := range qs {
				q := &qs[i]
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s %s\n",
					ui.Dim.Render(q.ID), q.Title, ui.EnergyPips(q.Energy), ui.StatusText(q.Status))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", string(engine.StatusBacklog), "Status filter (backlog|active|completed|abandoned)")

	return cmd
}
