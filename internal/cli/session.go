package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/shipdesk/internal/wire"
)

// LoginCmd returns the login command.
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save a bearer token for the active profile",
		Long: `Save the bearer token issued by the server for the active profile.
Without --token the token is read from the first line of stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, _ := cmd.Flags().GetString("token")
			if token == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Token: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read token: %w", err)
				}
				token = strings.TrimSpace(line)
			}
			if err := wire.SessionService().Login(cmd.Context(), token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged in as profile %s\n", wire.Config().Profile)
			return nil
		},
	}
	cmd.Flags().String("token", "", "Bearer token")
	return cmd
}

// LogoutCmd returns the logout command.
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session of the active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.SessionService().Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged out of profile %s\n", wire.Config().Profile)
			return nil
		},
	}
}

// WhoamiCmd returns the whoami command.
func WhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active profile and session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := wire.SessionService().Status(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Profile: %s\n", status.Profile)
			fmt.Fprintf(out, "Server:  %s\n", wire.Config().APIURL)
			if status.LoggedIn {
				fmt.Fprintf(out, "Session: active (%s)\n", status.Source)
			} else {
				fmt.Fprintln(out, "Session: none (run 'shipdesk login')")
			}
			return nil
		},
	}
}
