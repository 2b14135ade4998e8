package api

import (
	"encoding/json"
	"errors"

	"github.com/tminus/tminus/common"
	"github.com/tminus/tminus/internal/server"
)

func (s *Api) removeHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.InputHash
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_REMOVE, nil, err
	}
	if m.Hash == "" {
		return common.UPDATE_REMOVE, nil, errors.New("hash is required")
	}
	if err := s.manager.RemoveCountdown(m.Hash); err != nil {
		return common.UPDATE_REMOVE, nil, err
	}
	if s.scheduler != nil {
		s.scheduler.Remove(m.Hash)
	}
	pool.DropWatchers(m.Hash)
	return common.UPDATE_REMOVE, nil, nil
}
