package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/getaltair/altair-sub003/internal/engine"
	"github.com/getaltair/altair-sub003/internal/storage"
	"github.com/getaltair/altair-sub003/internal/ui"
)

func newAbandonCmd() *cobra.Command {
	return newTransitionCmd(
		"abandon <id>",
		"Abandon a quest",
		ui.IconWarn,
		"Quest abandoned",
		func(svc *engine.Service) func(ctx context.Context, owner, id string) (*storage.Quest, error) {
			return svc.AbandonQuest
		},
	)
}
