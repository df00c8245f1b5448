package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/shipdesk/internal/adapters/cli"
	"github.com/example/shipdesk/internal/core/schema"
	"github.com/example/shipdesk/internal/wire"
)

// RecordCmd returns the command tree for one resource: list, show, create,
// update, delete, email, fields and browse.
func RecordCmd(resource string, aliases ...string) *cobra.Command {
	s, err := schema.Lookup(resource)
	if err != nil {
		panic(err)
	}

	cmd := &cobra.Command{
		Use:     resource,
		Aliases: aliases,
		Short:   fmt.Sprintf("Manage %s", strings.ToLower(s.Title)),
		Long:    fmt.Sprintf("List, search, create, update, delete and email %s on the server", strings.ToLower(s.Title)),
	}

	adapter := func(cmd *cobra.Command) (*cliadapter.RecordAdapter, error) {
		return wire.RecordAdapterWithOutput(resource, cmd.OutOrStdout())
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", strings.ToLower(s.Title)),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cliadapter.ListOptions{}
			opts.Search, _ = cmd.Flags().GetString("search")
			opts.SortField, _ = cmd.Flags().GetString("sort")
			opts.Descending, _ = cmd.Flags().GetBool("desc")
			opts.Page, _ = cmd.Flags().GetInt("page")
			opts.PerPage, _ = cmd.Flags().GetInt("per-page")

			a, err := adapter(cmd)
			if err != nil {
				return err
			}
			return a.List(cmd.Context(), opts)
		},
	}
	listCmd.Flags().StringP("search", "s", "", "Only show records with a field containing this text")
	listCmd.Flags().String("sort", "", "Field to sort by (default created_at, newest first)")
	listCmd.Flags().Bool("desc", false, "Sort descending (with --sort)")
	listCmd.Flags().IntP("page", "p", 1, "Page to show")
	listCmd.Flags().Int("per-page", 0, "Rows per page (default from config)")

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: fmt.Sprintf("Show one %s", resource),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], resource)
			if err != nil {
				return err
			}
			a, err := adapter(cmd)
			if err != nil {
				return err
			}
			return a.Show(cmd.Context(), id)
		},
	}

	createCmd := &cobra.Command{
		Use:     "create",
		Short:   fmt.Sprintf("Create a %s", resource),
		Example: fmt.Sprintf("  shipdesk %s create %s", resource, exampleSet(s)),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, _ := cmd.Flags().GetStringArray("set")
			a, err := adapter(cmd)
			if err != nil {
				return err
			}
			return a.Create(cmd.Context(), sets)
		},
	}
	createCmd.Flags().StringArray("set", nil, "Field assignment field=value (repeatable)")

	updateCmd := &cobra.Command{
		Use:   "update [id]",
		Short: fmt.Sprintf("Update a %s", resource),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], resource)
			if err != nil {
				return err
			}
			sets, _ := cmd.Flags().GetStringArray("set")
			a, err := adapter(cmd)
			if err != nil {
				return err
			}
			return a.Update(cmd.Context(), id, sets)
		},
	}
	updateCmd.Flags().StringArray("set", nil, "Field assignment field=value (repeatable)")

	deleteCmd := &cobra.Command{
		Use:   "delete [id...]",
		Short: fmt.Sprintf("Delete one or more %s", strings.ToLower(s.Title)),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args, resource)
			if err != nil {
				return err
			}
			yes, _ := cmd.Flags().GetBool("yes")
			confirm := cliadapter.PromptConfirm(cmd.InOrStdin(), cmd.OutOrStdout(), resource)
			if yes {
				confirm = cliadapter.AlwaysConfirm
			}
			a, err := adapter(cmd)
			if err != nil {
				return err
			}
			return a.Delete(cmd.Context(), ids, confirm)
		},
	}
	deleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	emailCmd := &cobra.Command{
		Use:   "email [id...]",
		Short: fmt.Sprintf("Send one email about the given %s", strings.ToLower(s.Title)),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args, resource)
			if err != nil {
				return err
			}
			subject, _ := cmd.Flags().GetString("subject")
			content, _ := cmd.Flags().GetString("content")
			a, err := adapter(cmd)
			if err != nil {
				return err
			}
			return a.Email(cmd.Context(), ids, subject, content)
		},
	}
	emailCmd.Flags().String("subject", "", "Email subject (required)")
	emailCmd.Flags().String("content", "", "Email body")
	_ = emailCmd.MarkFlagRequired("subject")

	fieldsCmd := &cobra.Command{
		Use:         "fields",
		Short:       fmt.Sprintf("Describe the %s fields", resource),
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoInit: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			cliadapter.PrintFields(cmd.OutOrStdout(), s)
		},
	}

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: fmt.Sprintf("Browse %s interactively", strings.ToLower(s.Title)),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, resource)
		},
	}

	cmd.AddCommand(listCmd, showCmd, createCmd, updateCmd, deleteCmd, emailCmd, fieldsCmd, browseCmd)
	return cmd
}

func exampleSet(s *schema.Schema) string {
	var parts []string
	for _, f := range s.Fields {
		if f.Required {
			value := "..."
			if len(f.Options) > 0 {
				value = f.Options[0]
			}
			parts = append(parts, fmt.Sprintf("--set %s=%s", f.Name, value))
		}
	}
	return strings.Join(parts, " ")
}
