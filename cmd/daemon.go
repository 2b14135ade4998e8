package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/tminus/tminus/cmd/common"
	daemonpkg "github.com/tminus/tminus/internal/daemon"
	"github.com/tminus/tminus/pkg/logger"
	"github.com/tminus/tminus/pkg/tminuslib"
	"github.com/urfave/cli"
)

var (
	daemonConfigDir string

	daemonFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "config-dir, d",
			Usage:       "directory for the countdown database and hook script",
			Destination: &daemonConfigDir,
			EnvVar:      tminuslib.ConfigDirEnv,
		},
	}
)

func daemon(ctx *cli.Context) error {
	lg := logger.NewConsoleLogger(os.Stderr)
	defer lg.Close()

	runCtx, cancel := setupShutdownHandler()
	defer cancel()

	comps, err := initDaemonComponents(runCtx, lg)
	if err != nil {
		common.PrintRuntimeErr(ctx, "daemon", "init", err)
		return nil
	}

	if err := WritePidFile(); err != nil {
		lg.Warning("Failed to write pid file: %v", err)
	}
	defer func() { _ = RemovePidFile() }()

	runner := daemonpkg.New(&daemonpkg.Config{
		ServiceName:     daemonpkg.DefaultServiceName,
		DisplayName:     daemonpkg.DefaultDisplayName,
		Port:            daemonPort(),
		ConfigDir:       tminuslib.ConfigDir,
		ShutdownTimeout: DEF_SHUTDOWN_TIMEOUT,
	}, &daemonpkg.Dependencies{
		StartFunc:    comps.Server.Start,
		ShutdownFunc: func() error { comps.Close(); return nil },
	})

	go func() {
		<-runCtx.Done()
		_ = runner.Shutdown()
	}()

	lg.Info("Daemon listening (config dir: %s)", tminuslib.ConfigDir)
	if err := runner.Start(context.Background()); err != nil &&
		!errors.Is(err, context.Canceled) {
		common.PrintRuntimeErr(ctx, "daemon", "serve", err)
	}
	return nil
}
