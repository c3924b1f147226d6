package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/mystic-tarot-cli/internal/application"
	"github.com/bnema/mystic-tarot-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newChatCmd(app *app) *cobra.Command {
	var (
		minutes int
		tick    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open a timed chat with the tarot reader",
		Long:  "chat meters time spent with the reader. One minute of the daily chat quota is used for every 60 seconds. The session ends on Ctrl+C, when --minutes are used, or when the quota runs out.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if minutes < 0 {
				return fmt.Errorf("--minutes must be zero or positive, got %d", minutes)
			}

			app.store.SetScreen(cmd.Context(), domain.ScreenChat)

			status := app.store.Status()
			if !status.CanChat {
				_, err := fmt.Fprintf(cmd.OutOrStdout(),
					"Chat time for today is used up (%d/%d min). Run `tarot plan list` to see bigger plans.\n",
					status.Session.ChatTimeUsed,
					status.Session.MaxChatTime,
				)
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			result, err := runChatSpinner(ctx, cmd.ErrOrStderr(), status.ChatMinutesRemaining*60,
				func(ctx context.Context, progress func(application.ChatProgress)) application.ChatResult {
					meter := application.NewChatMeter(app.store,
						application.WithTickInterval(tick),
						application.WithProgress(progress),
						application.WithMeterLogger(app.logger),
					)
					return meter.Run(ctx, minutes)
				},
			)
			if err != nil {
				return fmt.Errorf("chat session: %w", err)
			}

			return writeChatSummary(cmd, app, result)
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Stop after this many chat minutes (0 = until the quota runs out)")
	cmd.Flags().DurationVar(&tick, "tick", application.DefaultChatTick, "Length of one metered second")
	_ = cmd.Flags().MarkHidden("tick")

	return cmd
}

func writeChatSummary(cmd *cobra.Command, app *app, result application.ChatResult) error {
	status := app.store.Status()

	if result.Exhausted {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Chat ended: %d min recorded. Today's chat time is used up.\n", result.MinutesRecorded)
		return err
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Chat ended: %d min recorded, %d/%d min left today.\n",
		result.MinutesRecorded,
		status.ChatMinutesRemaining,
		status.Session.MaxChatTime,
	)
	return err
}
