package api

import (
	"log"

	"github.com/tminus/tminus/common"
	"github.com/tminus/tminus/internal/hooks"
	"github.com/tminus/tminus/internal/scheduler"
	"github.com/tminus/tminus/internal/server"
	"github.com/tminus/tminus/pkg/tminuslib"
)

// BuildInfo carries the daemon's build identity for the version handler.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildType string
}

type Api struct {
	log       *log.Logger
	manager   *tminuslib.Manager
	scheduler *scheduler.Scheduler
	hooks     *hooks.Engine
	pool      *server.Pool
	build     BuildInfo
}

func NewApi(l *log.Logger, m *tminuslib.Manager, sched *scheduler.Scheduler, hookEngine *hooks.Engine, build BuildInfo) (*Api, error) {
	return &Api{
		log:       l,
		manager:   m,
		scheduler: sched,
		hooks:     hookEngine,
		build:     build,
	}, nil
}

func (s *Api) RegisterHandlers(srv *server.Server) {
	s.pool = srv.Pool()

	srv.RegisterHandler(common.UPDATE_ADD, s.addHandler)
	srv.RegisterHandler(common.UPDATE_REMOVE, s.removeHandler)
	srv.RegisterHandler(common.UPDATE_LIST, s.listHandler)
	srv.RegisterHandler(common.UPDATE_STATUS, s.statusHandler)
	srv.RegisterHandler(common.UPDATE_SET_TARGET, s.setTargetHandler)
	srv.RegisterHandler(common.UPDATE_WATCH, s.watchHandler)
	srv.RegisterHandler(common.UPDATE_VERSION, s.versionHandler)
}

func (s *Api) Close() error {
	return s.manager.Close()
}
