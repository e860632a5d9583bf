package main

import (
	"fmt"
	"os"

	"github.com/Dibbotcf/Legacyscript/client"
	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:8080/api"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Server string
	Token  string
	JSON   bool
	Color  string // "auto" | "always" | "never"
}

// Client builds an API client from the global flags.
func (o *RootOptions) Client() *client.Client {
	return client.New(o.Server, o.Token)
}

// Printer returns an output printer writing to the command's stdout.
func (o *RootOptions) Printer(cmd *cobra.Command) *Printer {
	return NewPrinter(cmd.OutOrStdout(), o.JSON, o.Color)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewRootCommand creates the root command for legacyctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "legacyctl",
		Short: "Manage Legacyscript submissions and invoices",
		Long: `legacyctl talks to a Legacyscript API server.

Sign in once and export the token:
  export LEGACY_TOKEN=$(legacyctl login --username LegacyED --token <public key> --json | jq -r .token)
  legacyctl invoices list
  legacyctl invoices share inv-42
  legacyctl submissions watch`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.Color {
			case "auto", "always", "never":
			default:
				return fmt.Errorf("invalid color mode %q: must be auto, always or never", opts.Color)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Server, "server", envOr("LEGACY_SERVER", defaultServer), "API base URL including the base path (env LEGACY_SERVER)")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", os.Getenv("LEGACY_TOKEN"), "bearer credential: admin token or public key (env LEGACY_TOKEN)")
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "print JSON instead of tables")
	cmd.PersistentFlags().StringVar(&opts.Color, "color", "auto", "color output (auto|always|never)")

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewHealthCommand(opts))
	cmd.AddCommand(NewSubmissionsCommand(opts))
	cmd.AddCommand(NewInvoicesCommand(opts))

	return cmd
}
