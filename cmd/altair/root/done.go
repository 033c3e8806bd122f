package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/getaltair/altair-sub003/internal/engine"
	"github.com/getaltair/altair-sub003/internal/storage"
	"github.com/getaltair/altair-sub003/internal/ui"
)

func newDoneCmd() *cobra.Command {
	return newTransitionCmd(
		"done <id>",
		"Complete a quest",
		ui.IconDone,
		"Quest completed",
		func(svc *engine.Service) func(ctx context.Context, owner, id string) (*storage.Quest, error) {
			return svc.CompleteQuest
		},
	)
}
