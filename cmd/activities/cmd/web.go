package cmd

import (
	"context"
	"time"

	"github.com/apex/log"
	"github.com/mergington/activities/pkg/config"
	"github.com/mergington/activities/pkg/web"
	"github.com/spf13/cobra"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the activities page over HTTP",
	Long: `Serve the activities page over HTTP. The log controls (/admin/log) are
served separately on --admin-listen, which must be a loopback address.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.BindFlag(config.WebAddrKey, cmd.Flags().Lookup("listen")); err != nil {
			return err
		}

		if err := cfg.BindFlag(config.AdminAddrKey, cmd.Flags().Lookup("admin-listen")); err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		admin := web.NewAdminServer(logHandler)
		go shutdownOnDone(ctx, "admin", admin.Shutdown)
		go func() {
			if err := admin.Start(cfg.GetKeyWithDefault(config.AdminAddrKey, config.DefaultAdminAddr)); err != nil {
				log.Errorf("Unable to start admin server: %s", err)
			}
		}()

		server := web.NewServer(newAPIClient())
		go shutdownOnDone(ctx, "web", server.Shutdown)

		return server.Start(cfg.GetKeyWithDefault(config.WebAddrKey, config.DefaultWebAddr))
	},
}

func init() {
	webCmd.Flags().String("listen", config.DefaultWebAddr, "Address to serve the page on")
	webCmd.Flags().String("admin-listen", config.DefaultAdminAddr, "Loopback address to serve the log controls on")
	rootCmd.AddCommand(webCmd)
}

// shutdownOnDone waits for ctx and then gives the server a few seconds to
// finish in flight requests.
func shutdownOnDone(ctx context.Context, name string, shutdown func(context.Context) error) {
	<-ctx.Done()
	log.Infof("Shutting down %s server...", name)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := shutdown(shutdownCtx); err != nil {
		log.Errorf("Shutdown of %s server failed: %s", name, err)
	}
}
