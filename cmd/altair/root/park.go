package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/getaltair/altair-sub003/internal/engine"
	"github.com/getaltair/altair-sub003/internal/storage"
	"github.com/getaltair/altair-sub003/internal/ui"
)

func newParkCmd() *cobra.Command {
	return newTransitionCmd(
		"park <id>",
		"Park the active quest back to the backlog",
		ui.IconPark,
		"Quest parked",
		func(svc *engine.Service) func(ctx context.Context, owner, id string) (*storage.Quest, error) {
			return svc.ParkQuest
		},
	)
}
