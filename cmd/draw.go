package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/bnema/mystic-tarot-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newDrawCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "draw",
		Short: "Draw today's tarot card",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.store.SetScreen(cmd.Context(), domain.ScreenCards)

			if !app.store.UseCard(cmd.Context()) {
				session := app.store.Snapshot()
				_, err := fmt.Fprintf(cmd.OutOrStdout(),
					"No cards left today (%d/%d used). Run `tarot plan list` to see bigger plans.\n",
					session.DailyCards,
					session.MaxDailyCards,
				)
				return err
			}

			card := domain.CardAt(app.pick(len(domain.Deck())))
			status := app.store.Status()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n\n%s\n\ncards left today: %d/%d\n",
				card.Name,
				card.Meaning,
				card.Description,
				status.CardsRemaining,
				status.Session.MaxDailyCards,
			)
			return err
		},
	}
}

func randomIndex(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.IntN(n)
}
