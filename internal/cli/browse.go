package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/shipdesk/internal/core/schema"
	"github.com/example/shipdesk/internal/tui"
	"github.com/example/shipdesk/internal/wire"
)

// BrowseCmd returns the top-level browse command.
func BrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "browse [shipment|quote]",
		Short:     "Browse records interactively (default shipment)",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: schema.Resources(),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource := schema.Shipment.Resource
			if len(args) == 1 {
				resource = args[0]
			}
			return runBrowse(cmd, resource)
		},
	}
}

func runBrowse(cmd *cobra.Command, resource string) error {
	controller, err := wire.ListController(resource)
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), controller)
}
