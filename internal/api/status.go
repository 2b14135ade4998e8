package api

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/tminus/tminus/common"
	"github.com/tminus/tminus/internal/server"
)

func (s *Api) statusHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.InputHash
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_STATUS, nil, err
	}
	if m.Hash == "" {
		return common.UPDATE_STATUS, nil, errors.New("hash is required")
	}
	item, err := s.manager.GetItem(m.Hash)
	if err != nil {
		return common.UPDATE_STATUS, nil, err
	}
	now := time.Now().UnixMilli()
	resp := &common.StatusResponse{
		Hash:        item.Hash,
		Name:        item.Name,
		TargetAt:    item.GetTarget(),
		RemainingMs: item.Remaining(now),
		Display:     item.Display(now),
		Elapsed:     item.IsElapsed(now),
		CronExpr:    item.CronExpr,
	}
	if perr := pool.GetError(m.Hash); perr != nil {
		resp.LastError = perr.Message
	}
	return common.UPDATE_STATUS, resp, nil
}
