package api

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/adhocore/gronx"
	"github.com/tminus/tminus/common"
	"github.com/tminus/tminus/internal/scheduler"
	"github.com/tminus/tminus/internal/server"
	"github.com/tminus/tminus/pkg/tminuslib"
)

func (s *Api) addHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.AddParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_ADD, nil, err
	}
	if m.Name == "" {
		return common.UPDATE_ADD, nil, errors.New("name is required")
	}
	target, err := tminuslib.ParseTarget(m.Target)
	if err != nil {
		return common.UPDATE_ADD, nil, err
	}
	if m.CronExpr != "" {
		if !gronx.New().IsValid(m.CronExpr) {
			return common.UPDATE_ADD, nil, errors.New("invalid cron expression: " + m.CronExpr)
		}
		if !scheduler.HasOccurrenceWithinYear(m.CronExpr, time.Now()) {
			return common.UPDATE_ADD, nil, errors.New("cron expression has no occurrence within a year: " + m.CronExpr)
		}
	}

	item, err := s.manager.AddCountdown(m.Name, target, &tminuslib.AddCountdownOpts{
		IsHidden: m.Hidden,
		CronExpr: m.CronExpr,
	})
	if err != nil {
		return common.UPDATE_ADD, nil, err
	}

	now := time.Now()
	if target > now.UnixMilli() && s.scheduler != nil {
		s.scheduler.Add(scheduler.ElapseEvent{
			Hash:      item.Hash,
			TriggerAt: time.UnixMilli(target),
			CronExpr:  item.CronExpr,
		})
	}

	return common.UPDATE_ADD, &common.AddResponse{
		Hash:     item.Hash,
		Name:     item.Name,
		TargetAt: target,
		Display:  item.Display(now.UnixMilli()),
	}, nil
}
