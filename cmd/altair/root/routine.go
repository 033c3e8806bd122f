package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getaltair/altair-sub003/internal/engine"
	"github.com/getaltair/altair-sub003/internal/ui"
)

func newRoutineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routine",
		Short: "Manage recurring routines that spawn quests",
	}
	cmd.AddCommand(
		newRoutineAddCmd(),
		newRoutineListCmd(),
		newRoutineSpawnCmd(),
		newRoutinePauseCmd(),
		newRoutineResumeCmd(),
	)
	return cmd
}

func newRoutineAddCmd() *cobra.Command {
	var description string
	var schedule string
	var timeOfDay string
	var energy int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a routine (daily, weekly:mon, monthly:15, or a cron expression)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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

			rt, err := svc.CreateRoutine(ctx, flagOwner, engine.CreateRoutineInput{
				Name:        args[0],
				Description: description,
				Schedule:    schedule,
				TimeOfDay:   timeOfDay,
				Energy:      energy,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconLoop, "Routine added"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("ID", rt.ID))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Next due", rt.NextDue.Format("2006-01-02 15:04 MST")))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description")
	cmd.Flags().StringVarP(&schedule, "schedule", "s", "daily", "Schedule (daily|weekly:<dow>|monthly:<day>|cron expr)")
	cmd.Flags().StringVar(&timeOfDay, "at", "", "Time of day (HH:MM, default 09:00)")
	cmd.Flags().IntVarP(&energy, "energy", "e", 1, "Energy cost of spawned quests (1-5)")

	return cmd
}

func newRoutineListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List routines",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rts, err := svc.ListRoutines(ctx, flagOwner)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconLoop, "Routines"))
			if len(rts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(none)"))
				return nil
			}
			for i := range rts {
				rt := &rts[i]
				state := ui.Good.Render("active")
				if !rt.Active {
					state = ui.Muted.Render("paused")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s [%s] next %s %s\n",
					ui.Dim.Render(rt.ID), rt.Name, rt.Schedule,
					rt.NextDue.Format("2006-01-02 15:04"), state)
			}
			return nil
		},
	}

	return cmd
}

func newRoutineSpawnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spawn <id>",
		Short: "Spawn the quest for a routine's current occurrence",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("routine id is required")
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

			if _, err := svc.GetRoutine(ctx, flagOwner, args[0]); err != nil {
				return err
			}
			q, err := svc.SpawnQuest(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconPlus, "Quest spawned"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("ID", q.ID))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Title", q.Title))
			return nil
		},
	}

	return cmd
}

func newRoutinePauseCmd() *cobra.Command {
	return newRoutineToggleCmd("pause", "Pause a routine (stops spawning)", false)
}

func newRoutineResumeCmd() *cobra.Command {
	return newRoutineToggleCmd("resume", "Resume a paused routine", true)
}

func newRoutineToggleCmd(verb, short string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: short,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("routine id is required")
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

			rt, err := svc.SetRoutineActive(ctx, flagOwner, args[0], active)
			if err != nil {
				return err
			}

			state := "paused"
			if rt.Active {
				state = "active"
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue(rt.Name, state))
			return nil
		},
	}
}
