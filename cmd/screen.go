package cmd

import (
	"fmt"

	"github.com/bnema/mystic-tarot-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newScreenCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "screen [name]",
		Short: "Show or change the active screen (wheel, cards, chat, plans, products)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), app.store.Snapshot().Screen)
				return err
			}

			screen, err := domain.ParseScreen(args[0])
			if err != nil {
				return err
			}

			app.store.SetScreen(cmd.Context(), screen)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "screen: %s\n", screen)
			return err
		},
	}
}
