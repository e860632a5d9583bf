package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Dibbotcf/Legacyscript/client"
	"github.com/Dibbotcf/Legacyscript/model"
	"github.com/spf13/cobra"
)

// NewSubmissionsCommand groups the contact form submission commands.
func NewSubmissionsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "submissions",
		Aliases: []string{"subs"},
		Short:   "List, watch and delete contact form submissions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List submissions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := opts.Client().ListSubmissions(cmd.Context())
			if err != nil {
				return err
			}
			return opts.Printer(cmd).Submissions(subs)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete submissions by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.Client()
			p := opts.Printer(cmd)
			for _, id := range args {
				if err := c.DeleteSubmission(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete submission %s: %w", id, err)
				}
				if !p.IsJSON() {
					p.Success("Deleted submission " + id)
				}
			}
			if p.IsJSON() {
				return p.JSON(map[string]any{"deleted": args})
			}
			return nil
		},
	})

	cmd.AddCommand(newWatchCommand(opts, "submissions", time.Minute,
		func(c *client.Client) func(context.Context) ([]model.Submission, error) {
			return c.ListSubmissions
		},
		(*Printer).Submissions))

	return cmd
}
