package cmd

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tminus/tminus/common"
	"github.com/tminus/tminus/internal/api"
	"github.com/tminus/tminus/internal/hooks"
	"github.com/tminus/tminus/internal/scheduler"
	"github.com/tminus/tminus/internal/server"
	"github.com/tminus/tminus/pkg/logger"
	"github.com/tminus/tminus/pkg/secrets"
	"github.com/tminus/tminus/pkg/tminuslib"
)

// DaemonComponents holds all initialized daemon components. This allows
// for unified initialization and cleanup across platforms.
type DaemonComponents struct {
	Manager   *tminuslib.Manager
	Hooks     *hooks.Engine
	Scheduler *scheduler.Scheduler
	Api       *api.Api
	Server    *server.Server
	logger    logger.Logger
	stdLogger *log.Logger
}

// Close releases all daemon component resources in reverse order of
// initialization.
func (c *DaemonComponents) Close() {
	if c.stdLogger != nil {
		c.stdLogger.Println("Shutting down daemon...")
	}

	// Closing the server first stops new requests and disconnects
	// watchers before the manager goes away.
	if c.Server != nil {
		_ = c.Server.Shutdown()
	}
	if c.Api != nil {
		_ = c.Api.Close()
	}

	if c.stdLogger != nil {
		c.stdLogger.Println("Daemon stopped")
	}
}

// daemonPort returns the TCP fallback port from the environment or the
// default.
func daemonPort() int {
	if port := os.Getenv(common.DaemonPortEnv); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p >= 1 && p <= 65535 {
			return p
		}
	}
	return common.DefaultPort
}

// initDaemonComponents initializes all daemon components with the
// provided logger. On error, any partially initialized components are
// cleaned up before returning.
var initDaemonComponents = func(ctx context.Context, lg logger.Logger) (*DaemonComponents, error) {
	stdLog := logger.ToStdLogger(lg)

	if daemonConfigDir != "" {
		if err := tminuslib.SetConfigDir(daemonConfigDir); err != nil {
			lg.Error("Config dir initialization failed: %v", err)
			return nil, err
		}
	}

	secret, err := secrets.LoadSecret(tminuslib.ConfigDir)
	if err != nil {
		lg.Error("RPC secret initialization failed: %v", err)
		return nil, err
	}

	m, err := tminuslib.InitManager()
	if err != nil {
		lg.Error("Manager initialization failed: %v", err)
		return nil, err
	}

	hookEngine, err := hooks.NewEngine(stdLog, filepath.Join(tminuslib.ConfigDir, hooks.HookFileName))
	if err != nil {
		lg.Error("Hook engine initialization failed: %v", err)
		m.Close()
		return nil, err
	}
	if hookEngine.Enabled() {
		lg.Info("Loaded hook script from %s", filepath.Join(tminuslib.ConfigDir, hooks.HookFileName))
	}

	// The scheduler needs the elapse callback and the callback needs
	// the api, so the api pointer is bound through a closure.
	var s *api.Api
	sched := scheduler.New(ctx, func(hash string) {
		s.HandleElapse(hash)
	})

	s, err = api.NewApi(stdLog, m, sched, hookEngine, api.BuildInfo{
		Version:   currentBuildArgs.Version,
		Commit:    currentBuildArgs.Commit,
		BuildType: currentBuildArgs.BuildType,
	})
	if err != nil {
		lg.Error("API initialization failed: %v", err)
		m.Close()
		return nil, err
	}

	serv := server.NewServer(stdLog, m, daemonPort(), &server.RPCConfig{
		Secret:    secret,
		Version:   currentBuildArgs.Version,
		Commit:    currentBuildArgs.Commit,
		BuildType: currentBuildArgs.BuildType,
	})
	s.RegisterHandlers(serv)
	s.LoadStartupEvents()

	return &DaemonComponents{
		Manager:   m,
		Hooks:     hookEngine,
		Scheduler: sched,
		Api:       s,
		Server:    serv,
		logger:    lg,
		stdLogger: stdLog,
	}, nil
}
