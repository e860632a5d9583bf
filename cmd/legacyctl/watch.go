package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dibbotcf/Legacyscript/client"
	"github.com/spf13/cobra"
)

// newWatchCommand polls a list and reprints it whenever the result changes.
func newWatchCommand[T any](
	opts *RootOptions,
	what string,
	defaultInterval time.Duration,
	fetch func(*client.Client) func(context.Context) (T, error),
	render func(*Printer, T) error,
) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: fmt.Sprintf("Poll %s and reprint them when they change", what),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := opts.Printer(cmd)
			var last []byte

			onResult := func(v T) {
				fingerprint, err := json.Marshal(v)
				if err == nil && last != nil && string(fingerprint) == string(last) {
					return
				}
				last = fingerprint

				if !p.IsJSON() {
					p.Muted("updated " + time.Now().Format(time.TimeOnly))
				}
				if err := render(p, v); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "render %s: %v\n", what, err)
				}
			}
			onErr := func(err error) {
				fmt.Fprintf(cmd.ErrOrStderr(), "poll %s: %v\n", what, err)
			}

			err := client.Poll(cmd.Context(), interval, fetch(opts.Client()), onResult, onErr)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", defaultInterval, "poll interval")

	return cmd
}
