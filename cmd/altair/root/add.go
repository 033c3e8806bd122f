package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getaltair/altair-sub003/internal/engine"
	"github.com/getaltair/altair-sub003/internal/ui"
)

func newAddCmd() *cobra.Command {
	var energy int
	var description string
	var epicID string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quest to the backlog",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			q, err := svc.CreateQuest(ctx, flagOwner, engine.CreateQuestInput{
				Title:       args[0],
				Description: description,
				Energy:      energy,
				EpicID:      epicID,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconPlus, "Quest added"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("ID", q.ID))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Title", q.Title))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Energy", ui.EnergyPips(q.Energy)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&energy, "energy", "e", 1, "Energy cost (1-5)")
	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description")
	cmd.Flags().StringVar(&epicID, "epic", "", "Epic ID to attach the quest to")

	return cmd
}
