package cmd

import (
	"encoding/json"
	"fmt"

	statusadapter "github.com/bnema/mystic-tarot-cli/internal/adapters/render/status"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show plan, remaining quota and wheel state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeStatusOutput(cmd, app, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print status as JSON")

	return cmd
}

func writeStatusOutput(cmd *cobra.Command, app *app, asJSON bool) error {
	status := app.store.Status()

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	rendered := app.statusRenderer(status, statusadapter.RenderOptions{Now: app.now()})
	_, err := fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
