package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/GriffinCanCode/launchpad/internal/domain/arguments"
	"github.com/GriffinCanCode/launchpad/internal/domain/instance"
	"github.com/GriffinCanCode/launchpad/internal/domain/launch"
	"github.com/GriffinCanCode/launchpad/internal/domain/session"
	"github.com/GriffinCanCode/launchpad/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/launchpad/internal/infrastructure/server"
)

const (
	staleExtractionAge = 24 * time.Hour
	watchInterval      = 250 * time.Millisecond
	exitInterrupted    = 130
)

type launchFlags struct {
	player      string
	accessToken string
	uuid        string
	watch       bool
	wait        bool
}

func newLaunchCmd(a *app) *cobra.Command {
	var flags launchFlags

	cmd := &cobra.Command{
		Use:   "launch <title>",
		Short: "Launch an installed instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.launch(cmd.Context(), cmd.OutOrStdout(), args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.player, "player", "", "player name")
	cmd.Flags().StringVar(&flags.accessToken, "access-token", "", "access token of an authenticated session (offline if empty)")
	cmd.Flags().StringVar(&flags.uuid, "uuid", "", "player id of an authenticated session")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "print progress while launching")
	cmd.Flags().BoolVar(&flags.wait, "wait", false, "wait for the game to exit")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

func buildSession(flags launchFlags) (*session.Session, error) {
	if flags.accessToken == "" {
		return session.Offline(flags.player), nil
	}
	sess := &session.Session{
		AccessToken: flags.accessToken,
		Name:        flags.player,
		UUID:        flags.uuid,
		UserType:    session.UserTypeMojang,
	}
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	return sess, nil
}

func (a *app) launch(ctx context.Context, out io.Writer, title string, flags launchFlags) error {
	inst, err := a.store.Get(ctx, title)
	if errors.Is(err, instance.ErrNotFound) {
		return &exitError{code: 2, msg: fmt.Sprintf("No instance named %q. Register it with 'instances add'.", title)}
	}
	if err != nil {
		return err
	}

	sess, err := buildSession(flags)
	if err != nil {
		return err
	}

	if n, err := launch.PruneExtractionDirs(a.layout.NativesDir(), time.Now().Add(-staleExtractionAge)); err != nil {
		a.logger.Warn("Failed to prune extraction directories", zap.Error(err))
	} else if n > 0 {
		a.logger.Debug("Pruned extraction directories", zap.Int("count", n))
	}

	metrics := monitoring.NewMetrics(nil)
	launcher := launch.New(launch.Config{
		Layout:  a.layout,
		Store:   a.store,
		Logger:  a.logger.Named("launch"),
		Metrics: metrics,
	})

	runner := launcher.NewRunner(inst, sess, launch.Options{
		MinMemory: a.cfg.Java.MinMemory,
		MaxMemory: a.cfg.Java.MaxMemory,
		PermGen:   a.cfg.Java.PermGen,
		JVMPath:   a.cfg.Java.JVMPath,
		JVMArgs:   a.cfg.Java.JVMArgs,
		Window: arguments.Window{
			Width:  a.cfg.Window.Width,
			Height: a.cfg.Window.Height,
		},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})

	serveCtx, stopServe := context.WithCancel(ctx)
	defer stopServe()
	if addr := a.cfg.Status.Addr; addr != "" {
		status := server.NewStatusServer(a.logger.Named("status"), metrics, a.cfg.Logging.Development)
		status.Track(runner.AttemptID(), runner)
		go func() {
			if err := status.Run(serveCtx, addr); err != nil {
				a.logger.Error("Status server failed", zap.Error(err))
			}
		}()
	}

	done := make(chan struct{})
	if flags.watch {
		go watch(out, runner, done)
	}

	handle, err := runner.Run(ctx)
	close(done)
	if err != nil {
		return launchExit(err)
	}

	if _, err := a.store.RecordLaunch(context.WithoutCancel(ctx), inst.Title); err != nil {
		a.logger.Warn("Failed to record launch", zap.Error(err))
	}
	fmt.Fprintf(out, "Started %s (pid %d)\n", inst.Title, handle.PID())

	if flags.wait {
		return handle.Wait()
	}
	return nil
}

func watch(out io.Writer, runner *launch.Runner, done <-chan struct{}) {
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	var last launch.State = -1
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			p := runner.Progress()
			if p.State != last {
				fmt.Fprintf(out, "[%3.0f%%] %s\n", p.Fraction*100, p.Status)
				last = p.State
			}
		}
	}
}

func launchExit(err error) error {
	var le *launch.Error
	if !errors.As(err, &le) {
		return err
	}
	if le.Kind == launch.KindInterrupted {
		return &exitError{code: exitInterrupted, msg: le.Message(language.English)}
	}
	return &exitError{code: 1, msg: le.Message(language.English)}
}
