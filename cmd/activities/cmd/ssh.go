package cmd

import (
	"github.com/mergington/activities/pkg/config"
	"github.com/mergington/activities/pkg/sshui"
	"github.com/spf13/cobra"
)

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Serve the activities console over SSH",
	Long: `Serve the activities console over SSH. Every connection gets its own
page. The host key is generated on first start when the file does not exist.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.BindFlag(config.SSHAddrKey, cmd.Flags().Lookup("listen")); err != nil {
			return err
		}

		server := sshui.NewServer(
			newAPIClient(),
			cfg.GetKeyWithDefault(config.SSHAddrKey, config.DefaultSSHAddr),
			cfg.GetKeyWithDefault(config.SSHHostKeyPathKey, config.DefaultSSHHostKeyPath),
		)

		if err := server.Start(); err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()
		go shutdownOnDone(ctx, "ssh", server.Shutdown)

		return server.ListenAndServe()
	},
}

func init() {
	sshCmd.Flags().String("listen", config.DefaultSSHAddr, "Address to accept SSH connections on")
	sshCmd.Flags().String("host-key", config.DefaultSSHHostKeyPath, "Path of the SSH host key")
	rootCmd.AddCommand(sshCmd)
}
