package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Jumpaku/go-drivemirror"
	"github.com/Jumpaku/go-drivemirror/auth"
	"github.com/Jumpaku/go-drivemirror/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg = config.Load()

	rootCmd = &cobra.Command{
		Use:          "drivemirror",
		Short:        "Mirror local directory trees onto Google Drive and manage remote folders",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := cfg.Finalize(); err != nil {
				return err
			}
			return initLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	rootCmd.PersistentFlags().BoolVar(&cfg.LogColorDisabled, "log-color-disabled", cfg.LogColorDisabled, "Force to disable colorful logs")
	rootCmd.PersistentFlags().StringVar(&cfg.CredentialsFile, "credentials", cfg.CredentialsFile, "Service account or authorized user credentials JSON")
	rootCmd.PersistentFlags().StringVar(&cfg.ClientSecretFile, "client-secret", cfg.ClientSecretFile, "OAuth client secret JSON of an installed application")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token", cfg.TokenFile, "File the OAuth token is saved to")
}

func initLog() error {
	formatter := logrus.TextFormatter{
		FullTimestamp: true,
	}

	if cfg.LogColorDisabled {
		formatter.DisableColors = true
	} else {
		formatter.ForceColors = true
	}

	logrus.SetFormatter(&formatter)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level '%s': %w", cfg.LogLevel, err)
	}
	logrus.SetLevel(level)
	return nil
}

// newSession authenticates against Google Drive and opens a session for one command.
func newSession(cmd *cobra.Command) (*drivemirror.Session, error) {
	service, err := auth.NewService(cmd.Context(), cfg, cmd.InOrStdin(), cmd.ErrOrStderr(), logrus.StandardLogger())
	if err != nil {
		return nil, err
	}
	return drivemirror.NewSession(drivemirror.NewDrive(service), drivemirror.WithLogger(logrus.StandardLogger())), nil
}

// Execute is the command line entrypoint.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
