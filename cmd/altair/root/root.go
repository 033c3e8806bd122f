package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getaltair/altair-sub003/internal/ui"
)

const Version = "0.1.0"

var (
	flagConfig string
	flagOwner  string
)

var rootCmd = &cobra.Command{
	Use:           "altair",
	Short:         "Altair — local-first guidance workflow for quests, routines, and capture",
	Long:          "Altair is a local-first CLI/TUI for single-focus quest work: one active quest at a time, daily energy budgets, routine-spawned quests, and a universal inbox.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&flagOwner, "owner", "local", "Owner scope for all operations")

	rootCmd.AddCommand(
		newAddCmd(),
		newStartCmd(),
		newDoneCmd(),
		newParkCmd(),
		newAbandonCmd(),
		newRestoreCmd(),
		newListCmd(),
		newTodayCmd(),
		newEnergyCmd(),
		newInboxCmd(),
		newRoutineCmd(),
		newBoardCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
