package api

import (
	"encoding/json"

	"github.com/tminus/tminus/common"
	"github.com/tminus/tminus/internal/server"
	"github.com/tminus/tminus/pkg/tminuslib"
)

func (s *Api) listHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.ListParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_LIST, nil, err
	}
	var items []*tminuslib.Item
	switch {
	case m.ShowElapsed && m.ShowPending:
		items = s.manager.GetItems()
	case m.ShowElapsed:
		items = s.manager.GetElapsedItems()
	case m.ShowPending:
		items = s.manager.GetPendingItems()
	default:
		items = s.manager.GetItems()
	}
	return common.UPDATE_LIST, &common.ListResponse{
		Items: items,
	}, nil
}
