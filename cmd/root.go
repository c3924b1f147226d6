package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

// skipStateAnnotation marks commands that never touch the session record.
const skipStateAnnotation = "tarot/skip-state"

func Execute() error {
	rootCmd, closeApp := newRootCmd()
	return executeRoot(rootCmd, closeApp)
}

// executeRoot flushes pending saves whether or not the command failed: a card
// granted before a failed write must still be recorded.
func executeRoot(rootCmd *cobra.Command, closeApp func(context.Context) error) error {
	err := rootCmd.Execute()
	if closeErr := closeApp(context.Background()); closeErr != nil {
		rootCmd.PrintErrln("Error:", closeErr)
		err = errors.Join(err, closeErr)
	}
	return err
}

func newRootCmd() (*cobra.Command, func(context.Context) error) {
	rootCmd := &cobra.Command{
		Use:           "tarot",
		Short:         "Mystic Tarot: daily readings, wheel spin and chat quota",
		Long:          "tarot tracks your Mystic Tarot session from the terminal: the active plan, daily card draws, chat minutes with the reader, the one-time wheel spin, and the screen you are on. Counters reset at the first use of each new day.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd, func(context.Context) error { return nil }
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if cmd.Annotations[skipStateAnnotation] != "" {
			return
		}
		app.store.Load(cmd.Context())
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newStatusCmd(app),
		newPlanCmd(app),
		newDrawCmd(app),
		newSpinCmd(app),
		newChatCmd(app),
		newScreenCmd(app),
		newResetCmd(app),
	)

	return rootCmd, app.close
}
