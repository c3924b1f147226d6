package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset today's card, chat and wheel counters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.store.ResetDaily(cmd.Context())

			session := app.store.Snapshot()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Daily counters reset for %s.\n", session.LastResetDate)
			return err
		},
	}
}
