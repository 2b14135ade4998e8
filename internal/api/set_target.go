package api

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/tminus/tminus/common"
	"github.com/tminus/tminus/internal/scheduler"
	"github.com/tminus/tminus/internal/server"
	"github.com/tminus/tminus/pkg/tminuslib"
)

func (s *Api) setTargetHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.SetTargetParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_SET_TARGET, nil, err
	}
	if m.Hash == "" {
		return common.UPDATE_SET_TARGET, nil, errors.New("hash is required")
	}
	target, err := tminuslib.ParseTarget(m.Target)
	if err != nil {
		return common.UPDATE_SET_TARGET, nil, err
	}
	if err := s.manager.SetTarget(m.Hash, target); err != nil {
		return common.UPDATE_SET_TARGET, nil, err
	}

	item, err := s.manager.GetItem(m.Hash)
	if err != nil {
		return common.UPDATE_SET_TARGET, nil, err
	}

	// Replace any pending elapse event with one for the new target.
	if s.scheduler != nil {
		s.scheduler.Remove(m.Hash)
		if target > time.Now().UnixMilli() {
			s.scheduler.Add(scheduler.ElapseEvent{
				Hash:      m.Hash,
				TriggerAt: time.UnixMilli(target),
				CronExpr:  item.CronExpr,
			})
		}
	}

	return common.UPDATE_SET_TARGET, &common.SetTargetResponse{
		Hash:     m.Hash,
		TargetAt: target,
		Display:  item.Display(time.Now().UnixMilli()),
	}, nil
}
