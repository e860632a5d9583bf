package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHealthCommand checks the server and, with an admin token, the store.
func NewHealthCommand(opts *RootOptions) *cobra.Command {
	var db bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the API server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.Client()
			p := opts.Printer(cmd)

			if !db {
				if err := c.Health(cmd.Context()); err != nil {
					return err
				}
				if p.IsJSON() {
					return p.JSON(map[string]string{"status": "ok"})
				}
				p.Success("API server is up")
				return nil
			}

			report, err := c.DBHealth(cmd.Context())
			if err != nil {
				return err
			}
			if p.IsJSON() {
				return p.JSON(report)
			}
			p.Success(fmt.Sprintf("Database %s: %d submission(s), %d invoice(s)",
				report.Database, report.SubmissionsCount, report.InvoicesCount))
			p.Muted("checked at " + report.Timestamp)
			return nil
		},
	}

	cmd.Flags().BoolVar(&db, "db", false, "also scan the store (admin token required)")

	return cmd
}
