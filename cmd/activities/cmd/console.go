package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/mergington/activities/pkg/console"
	"github.com/spf13/cobra"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run the interactive activities console in this terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		session := console.NewSession(newAPIClient(), console.NewLineReader(os.Stdin), os.Stdout).
			WithLogger(log.WithField("frontend", "console"))

		return session.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
