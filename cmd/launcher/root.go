package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/launchpad/internal/domain/instance"
	"github.com/GriffinCanCode/launchpad/internal/infrastructure/config"
	"github.com/GriffinCanCode/launchpad/internal/infrastructure/logging"
	"github.com/GriffinCanCode/launchpad/internal/shared/paths"
)

// exitError carries a process exit code up to main
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit %d: %s", e.code, e.msg)
}

// app holds what every subcommand needs
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	layout paths.Layout
	store  *instance.SQLStore
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	a := &app{}

	root := &cobra.Command{
		Use:           "launcher",
		Short:         "Launch installed game instances",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cfgFile)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "TOML config file layered over the environment")

	root.AddCommand(newLaunchCmd(a))
	root.AddCommand(newInstancesCmd(a))
	return root
}

func (a *app) init(cfgFile string) error {
	var err error
	if cfgFile != "" {
		a.cfg, err = config.LoadFile(cfgFile)
		if err != nil {
			return err
		}
	} else {
		a.cfg = config.LoadOrDefault()
	}

	a.logger, err = logging.ForSettings(a.cfg.Logging.Level, a.cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.layout = paths.New(a.cfg.BaseDir())
	for _, dir := range a.layout.StandardDirectories() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	a.store, err = instance.Open(a.layout.DatabasePath())
	if err != nil {
		return err
	}
	if err := a.store.Init(); err != nil {
		return err
	}

	a.logger.Debug("Launcher initialized", zap.String("base_dir", a.layout.Base))
	return nil
}

func (a *app) close() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
