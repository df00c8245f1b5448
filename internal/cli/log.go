package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/shipdesk/internal/ports/primary"
	"github.com/example/shipdesk/internal/wire"
)

// LogCmd returns the log command with all subcommands attached.
func LogCmd() *cobra.Command {
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "View local activity logs",
		Long:  "View and prune the local audit trail of creates, updates, deletes and emails",
	}

	tailCmd := &cobra.Command{
		Use:   "tail",
		Short: "Show recent activity",
		Long:  "Show recent activity log entries (default 50)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			resource, _ := cmd.Flags().GetString("resource")
			action, _ := cmd.Flags().GetString("action")
			if limit <= 0 {
				limit = 50
			}
			return wire.LogAdapterWithOutput(cmd.OutOrStdout()).List(cmd.Context(), primary.LogFilters{
				Resource: resource,
				Action:   action,
				Limit:    limit,
			})
		},
	}
	tailCmd.Flags().IntP("limit", "n", 50, "Number of entries to show")
	tailCmd.Flags().String("resource", "", "Filter by resource (shipment, quote)")
	tailCmd.Flags().String("action", "", "Filter by action (create, update, delete, email)")

	showCmd := &cobra.Command{
		Use:   "show [resource] [id]",
		Short: "Show activity for one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1], args[0])
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			return wire.LogAdapterWithOutput(cmd.OutOrStdout()).List(cmd.Context(), primary.LogFilters{
				Resource: args[0],
				RecordID: id,
				Limit:    limit,
			})
		},
	}
	showCmd.Flags().IntP("limit", "n", 100, "Maximum entries to show")

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old log entries",
		Long:  "Delete log entries older than the specified number of days (default 30)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			if days <= 0 {
				days = 30
			}
			return wire.LogAdapterWithOutput(cmd.OutOrStdout()).Prune(cmd.Context(), days)
		},
	}
	pruneCmd.Flags().Int("days", 30, "Delete entries older than N days")

	logCmd.AddCommand(tailCmd, showCmd, pruneCmd)
	return logCmd
}
