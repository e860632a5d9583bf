package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// NewLoginCommand exchanges admin credentials for a session token.
func NewLoginCommand(opts *RootOptions) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as an administrator and print a session token",
		Long: `Sign in with the admin username and password. --token must carry the
public site key. The printed token is used with --token or LEGACY_TOKEN.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
			password, err := promptPassword(cmd)
			fmt.Fprintln(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			if password == "" {
				return errors.New("password is required")
			}

			result, err := opts.Client().Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			p := opts.Printer(cmd)
			if p.IsJSON() {
				return p.JSON(result)
			}
			p.Success(fmt.Sprintf("Signed in as %s (expires %s)", result.Username, result.ExpiresAt))
			fmt.Fprintln(cmd.OutOrStdout(), result.Token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

// promptPassword reads without echo from a terminal, or one line from a pipe.
func promptPassword(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := readPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
