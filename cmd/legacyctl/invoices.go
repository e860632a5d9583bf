package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Dibbotcf/Legacyscript/client"
	"github.com/Dibbotcf/Legacyscript/model"
	"github.com/spf13/cobra"
)

// NewInvoicesCommand groups the invoice commands.
func NewInvoicesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoices",
		Aliases: []string{"inv"},
		Short:   "List, share, watch and delete invoices",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List invoices, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			invoices, err := opts.Client().ListInvoices(cmd.Context())
			if err != nil {
				return err
			}
			return opts.Printer(cmd).Invoices(invoices)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete invoices by id. Their share links stop working.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.Client()
			p := opts.Printer(cmd)
			for _, id := range args {
				if err := c.DeleteInvoice(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete invoice %s: %w", id, err)
				}
				if !p.IsJSON() {
					p.Success("Deleted invoice " + id)
				}
			}
			if p.IsJSON() {
				return p.JSON(map[string]any{"deleted": args})
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "share <id>",
		Short: "Issue a public share link for an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.Client().ShareInvoice(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p := opts.Printer(cmd)
			if p.IsJSON() {
				return p.JSON(result)
			}
			p.Success(fmt.Sprintf("Invoice %s shared as %s", result.Invoice.ID, result.ShareID))
			fmt.Fprintln(cmd.OutOrStdout(), result.URL)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "shared <share-id>",
		Short: "Show the invoice a share link resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := opts.Client().GetSharedInvoice(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return opts.Printer(cmd).Invoice(inv)
		},
	})

	cmd.AddCommand(newWatchCommand(opts, "invoices", 3*time.Second,
		func(c *client.Client) func(context.Context) ([]model.Invoice, error) {
			return c.ListInvoices
		},
		(*Printer).Invoices))

	return cmd
}
