package api

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/tminus/tminus/common"
	"github.com/tminus/tminus/internal/server"
	"github.com/tminus/tminus/pkg/tminuslib"
)

// watchHandler attaches the connection to a countdown's tick stream.
// The first watcher activates the countdown's scheduler with a sink that
// broadcasts every rendered tick to the pool; later watchers just join the
// pool behind that sink. When the last watcher drops, the scheduler is
// deactivated so idle countdowns cost nothing.
func (s *Api) watchHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.InputHash
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_WATCH, nil, err
	}
	if m.Hash == "" {
		return common.UPDATE_WATCH, nil, errors.New("hash is required")
	}
	item, err := s.manager.GetItem(m.Hash)
	if err != nil {
		return common.UPDATE_WATCH, nil, err
	}

	hash := item.Hash
	pool.AddWatcher(hash, sconn.Conn)

	if _, err := s.manager.Activate(hash, s.broadcastSink(item)); err != nil {
		pool.RemoveWatcher(hash, sconn.Conn)
		return common.UPDATE_WATCH, nil, err
	}

	now := time.Now().UnixMilli()
	return common.UPDATE_WATCH, &common.WatchResponse{
		Hash:        hash,
		Name:        item.Name,
		TargetAt:    item.GetTarget(),
		RemainingMs: item.Remaining(now),
		Display:     item.Display(now),
		CronExpr:    item.CronExpr,
	}, nil
}

// broadcastSink renders ticks into the watcher pool for the item's hash.
func (s *Api) broadcastSink(item *tminuslib.Item) tminuslib.RenderSink {
	hash := item.Hash
	return tminuslib.SinkFunc(func(text string) {
		now := time.Now().UnixMilli()
		action := common.TickProgress
		if item.IsElapsed(now) {
			action = common.TickElapsed
		}
		s.pool.Broadcast(hash, server.MakeResult(common.UPDATE_TICK, &common.TickResponse{
			Hash:        hash,
			Action:      action,
			RemainingMs: item.Remaining(now),
			Display:     text,
			TargetAt:    item.GetTarget(),
		}))
		if !s.pool.HasWatchers(hash) {
			s.manager.Deactivate(hash)
		}
	})
}
