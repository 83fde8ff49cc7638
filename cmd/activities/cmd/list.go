package cmd

import (
	"os"

	"github.com/mergington/activities/pkg/console"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the activities and their participants",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		return console.List(ctx, newAPIClient(), os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
