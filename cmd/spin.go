package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSpinCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "spin",
		Short: "Spin the welcome wheel (once per day)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.store.Snapshot().HasSpunWheel {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "The wheel was already spun today. Come back tomorrow.")
				return err
			}

			app.store.SpinWheel(cmd.Context())

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "The wheel stops... you won: %s\nRun `tarot draw` to reveal your card.\n",
				app.store.Snapshot().WheelPrize,
			)
			return err
		},
	}
}
