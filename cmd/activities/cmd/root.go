/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/mergington/activities/pkg/apiclient"
	"github.com/mergington/activities/pkg/clog"
	"github.com/mergington/activities/pkg/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	cfg        *config.ViperConfig
	logHandler *clog.Handler
)

// flagKeys maps command line flags to the config keys they override.
var flagKeys = map[string]string{
	"api-url":   config.APIURLKey,
	"log-level": config.LogLevelKey,
	"timeout":   config.HTTPTimeoutKey,
	"host-key":  config.SSHHostKeyPathKey,
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "activities",
	Short: "Browse and sign up for Mergington High School activities",
	Long: `activities talks to the Mergington extracurricular activities backend.
It lists the activities with their participants, signs students up and
removes them again, from a terminal console, over SSH or from a web page.

Settings come from the command line, then the environment, then the env
file (~/.activities.env unless --env-file or ACTIVITIES_DOTENV_PATH says
otherwise), then the --config file.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("api-url", config.DefaultAPIURL, "Base URL of the activities backend")
	flags.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error or fatal")
	flags.Int("timeout", config.DefaultHTTPTimeout, "Backend request timeout in seconds")
	flags.String("env-file", "", "Env file to load (default $ACTIVITIES_DOTENV_PATH or ~/.activities.env)")
	flags.String("config", "", "Config file (yaml, toml or json) with ACTIVITIES_* keys")
}

// setup loads the env file, layers the flags over the environment and
// installs the log handler. It runs before every subcommand.
func setup(cmd *cobra.Command, _ []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile == "" {
		var err error
		if envFile, err = config.DotenvPath(); err != nil {
			return errors.Wrap(err, "unable to find env file")
		}
	}

	if err := config.NewDotenvConfig(envFile).LoadIfExists(); err != nil {
		return errors.Wrapf(err, "failed loading env file %s", envFile)
	}

	cfg = config.NewViperConfig()
	if err := bindFlags(cmd.Flags()); err != nil {
		return err
	}

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		if err := cfg.LoadFromPath(configFile); err != nil {
			return err
		}
	}
	config.SetConfig(cfg)

	var err error
	logHandler, err = clog.Setup(os.Stdout, cfg.GetKeyWithDefault(config.LogLevelKey, config.DefaultLogLevel))
	if err != nil {
		return err
	}

	return nil
}

// bindFlags binds the flagKeys flags that are defined on the running
// command. --listen means a different key per command, so web and ssh bind
// it themselves.
func bindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}

		if err := cfg.BindFlag(key, flag); err != nil {
			return err
		}
	}

	return nil
}

func newAPIClient() *apiclient.Client {
	client := apiclient.NewClient(
		cfg.GetKeyWithDefault(config.APIURLKey, config.DefaultAPIURL),
		config.HTTPTimeout(cfg),
	)
	log.Debugf("Using activities backend at %s", client.BaseURL())

	return client
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
