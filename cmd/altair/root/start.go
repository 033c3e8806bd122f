package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/getaltair/altair-sub003/internal/engine"
	"github.com/getaltair/altair-sub003/internal/storage"
	"github.com/getaltair/altair-sub003/internal/ui"
)

func newStartCmd() *cobra.Command {
	return newTransitionCmd(
		"start <id>",
		"Start a backlog quest (one active quest at a time)",
		ui.IconBolt,
		"Quest started",
		func(svc *engine.Service) func(ctx context.Context, owner, id string) (*storage.Quest, error) {
			return svc.StartQuest
		},
	)
}
