// Package cli provides CLI commands for the shipdesk application.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	domainerr "github.com/example/shipdesk/internal/core/errors"
	"github.com/example/shipdesk/internal/version"
	"github.com/example/shipdesk/internal/wire"
)

// annotationNoInit marks commands that must run without the wired services
// (for example to repair a broken config file).
const annotationNoInit = "shipdesk/no-init"

// NewRootCmd builds the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	var overrides wire.Overrides

	rootCmd := &cobra.Command{
		Use:     "shipdesk",
		Short:   "shipdesk - manage shipments and quotes from the terminal",
		Version: version.String(),
		Long: `shipdesk lists, searches, edits and deletes the shipment and quote records
of a logistics REST service, and sends bulk emails about them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipInit(cmd) {
				return nil
			}
			wire.SetOverrides(overrides)
			return wire.Init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			wire.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&overrides.Profile, "profile", "", "Session profile (overrides config and $SHIPDESK_PROFILE)")
	rootCmd.PersistentFlags().StringVar(&overrides.APIURL, "api-url", "", "Base URL of the REST service")
	rootCmd.PersistentFlags().BoolVarP(&overrides.Verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(RecordCmd("shipment", "shipments"))
	rootCmd.AddCommand(RecordCmd("quote", "quotes"))
	rootCmd.AddCommand(BrowseCmd())
	rootCmd.AddCommand(LoginCmd())
	rootCmd.AddCommand(LogoutCmd())
	rootCmd.AddCommand(WhoamiCmd())
	rootCmd.AddCommand(LogCmd())
	rootCmd.AddCommand(ConfigCmd())

	return rootCmd
}

func skipInit(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[annotationNoInit]; ok {
			return true
		}
	}
	return false
}

// FormatError turns an error into the message shown to the user.
func FormatError(err error) string {
	var verr *domainerr.ValidationError
	switch {
	case errors.Is(err, domainerr.ErrUnauthenticated):
		return "Not signed in. Run 'shipdesk login --token <token>' or set $SHIPDESK_TOKEN."
	case errors.Is(err, domainerr.ErrUnauthorized):
		return "The server rejected your session. Run 'shipdesk login' again."
	case errors.Is(err, domainerr.ErrNoSelection):
		return "No records given. Pass one or more record ids."
	case errors.As(err, &verr):
		msg := "Invalid record:"
		for _, f := range verr.Fields {
			msg += fmt.Sprintf("\n  %s %s", f.Field, f.Message)
		}
		return msg
	}
	return fmt.Sprintf("Error: %v", err)
}
