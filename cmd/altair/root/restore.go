package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/getaltair/altair-sub003/internal/engine"
	"github.com/getaltair/altair-sub003/internal/storage"
	"github.com/getaltair/altair-sub003/internal/ui"
)

func newRestoreCmd() *cobra.Command {
	return newTransitionCmd(
		"restore <id>",
		"Restore a soft-deleted quest",
		ui.IconSparkle,
		"Quest restored",
		func(svc *engine.Service) func(ctx context.Context, owner, id string) (*storage.Quest, error) {
			return svc.RestoreQuest
		},
	)
}
