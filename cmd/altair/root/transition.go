package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getaltair/altair-sub003/internal/engine"
	"github.com/getaltair/altair-sub003/internal/storage"
	"github.com/getaltair/altair-sub003/internal/ui"
)

// newTransitionCmd builds the shared shape of the four lifecycle commands:
// a single quest-id argument and a status-change call on the engine.
func newTransitionCmd(use, short, icon, heading string, fn func(svc *engine.Service) func(ctx context.Context, owner, id string) (*storage.Quest, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("quest id is required")
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

			q, err := fn(svc)(ctx, flagOwner, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(icon, heading))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Title", q.Title))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Status", ui.StatusText(q.Status)))
			return nil
		},
	}
}
