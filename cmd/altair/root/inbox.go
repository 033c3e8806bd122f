package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getaltair/altair-sub003/internal/engine"
	"github.com/getaltair/altair-sub003/internal/ui"
)

func newInboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Capture thoughts and triage them into quests, notes, items, or documents",
	}
	cmd.AddCommand(newInboxCaptureCmd(), newInboxListCmd(), newInboxTriageCmd())
	return cmd
}

func newInboxCaptureCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "capture <content>",
		Short: "Capture a thought into the inbox",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("content is required")
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

			it, err := svc.CaptureInbox(ctx, flagOwner, engine.CaptureInput{
				Content: args[0],
				Source:  source,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconInbox, "Captured"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("ID", it.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "cli", "Capture source tag")

	return cmd
}

func newInboxListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List untriaged inbox items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			items, err := svc.ListInbox(ctx, flagOwner)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconInbox, "Inbox"))
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(empty — nice)"))
				return nil
			}
			for i := range items {
				it := &items[i]
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n",
					ui.Dim.Render(it.ID), it.Content, ui.Muted.Render("("+it.Source+")"))
			}
			return nil
		},
	}

	return cmd
}

func newInboxTriageCmd() *cobra.Command {
	var title string
	var body string
	var energy int
	var quantity int
	var location string
	var url string

	cmd := &cobra.Command{
		Use:   "triage <id> <kind>",
		Short: "Convert an inbox item into a quest, note, item, or source document",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and kind are required")
			}
			if !engine.TriageKind(args[1]).IsValid() {
				return errors.New("kind must be one of quest, note, item, source_document")
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

			id := args[0]
			kind := engine.TriageKind(args[1])

			// Default the entity title to the captured content.
			if title == "" {
				it, err := svc.GetInboxItem(ctx, flagOwner, id)
				if err != nil {
					return err
				}
				title = it.Content
			}

			target := engine.TriageTarget{Kind: kind}
			switch kind {
			case engine.TriageQuest:
				target.Quest = &engine.CreateQuestInput{Title: title, Description: body, Energy: energy}
			case engine.TriageNote:
				target.Note = &engine.NoteInput{Title: title, Body: body}
			case engine.TriageItem:
				target.Item = &engine.ItemInput{Name: title, Quantity: quantity, Location: location}
			case engine.TriageSourceDocument:
				target.SourceDocument = &engine.SourceDocumentInput{Title: title, URL: url, Content: body}
			}

			newID, err := svc.Triage(ctx, flagOwner, id, target)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Triaged"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Kind", string(kind)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("ID", newID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Title/name for the new entity (default: captured content)")
	cmd.Flags().StringVarP(&body, "body", "b", "", "Body/description/content")
	cmd.Flags().IntVarP(&energy, "energy", "e", 1, "Energy cost for a quest (1-5)")
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "Quantity for an item")
	cmd.Flags().StringVar(&location, "location", "", "Location for an item")
	cmd.Flags().StringVar(&url, "url", "", "URL for a source document")

	return cmd
}
