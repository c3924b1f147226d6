package cmd

import (
	"fmt"

	"github.com/bnema/mystic-tarot-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *app) *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "List and switch subscription plans",
	}

	planCmd.AddCommand(
		newPlanListCmd(app),
		newPlanSetCmd(app),
	)

	return planCmd
}

func newPlanListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available plans and their daily limits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			current := app.store.Snapshot().Plan

			for _, info := range domain.Plans() {
				marker := " "
				if info.Plan == current {
					marker = "*"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%s\t%d cards/day\t%d min chat\t%s\n",
					marker,
					info.Plan,
					info.Name,
					info.Price,
					info.Limits.MaxCards,
					info.Limits.MaxChatTime,
					info.Description,
				); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newPlanSetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:       "set <plan>",
		Short:     "Activate a plan (demo, standard, premium)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.PlanDemo), string(domain.PlanStandard), string(domain.PlanPremium)},
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := domain.ParsePlan(args[0])
			if err != nil {
				return err
			}

			app.store.UpdatePlan(cmd.Context(), plan)
			app.store.SetScreen(cmd.Context(), domain.ScreenCards)

			info := plan.Info()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Plan %s activated: %d cards/day, %d min chat.\n",
				info.Name,
				info.Limits.MaxCards,
				info.Limits.MaxChatTime,
			)
			return err
		},
	}
}
