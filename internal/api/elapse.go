package api

import (
	"time"

	"github.com/tminus/tminus/common"
	"github.com/tminus/tminus/internal/hooks"
	"github.com/tminus/tminus/internal/scheduler"
	"github.com/tminus/tminus/internal/server"
	"github.com/tminus/tminus/pkg/tminuslib"
)

// HandleElapse is the scheduler's callback, invoked when a countdown's
// target passes. It notifies watchers, fires the user hook, and for
// recurring countdowns persists the next occurrence as the new target.
func (s *Api) HandleElapse(hash string) {
	item, err := s.manager.GetItem(hash)
	if err != nil {
		// Removed between scheduling and firing.
		return
	}

	if s.pool != nil {
		s.pool.Broadcast(hash, server.MakeResult(common.UPDATE_TICK, &common.TickResponse{
			Hash:     hash,
			Action:   common.TickElapsed,
			Display:  tminuslib.ElapsedText,
			TargetAt: item.GetTarget(),
		}))
	}

	if s.hooks.Enabled() {
		tminuslib.SafeGo(s.log, "hooks.onElapsed", func() {
			if err := s.hooks.OnElapsed(&hooks.ElapseEvent{
				Hash:      item.Hash,
				Name:      item.Name,
				TargetAt:  item.GetTarget(),
				CronExpr:  item.CronExpr,
				Recurring: item.IsRecurring(),
			}); err != nil {
				s.log.Println("Hook error:", err.Error())
				if s.pool != nil {
					s.pool.WriteError(item.Hash, server.ErrorTypeWarning, "onElapsed hook failed: "+err.Error())
				}
			}
		})
	}

	if !item.IsRecurring() {
		return
	}

	// The scheduler re-arms its own heap from the cron expression; here we
	// persist the new target so listings and live watchers follow along.
	next, err := scheduler.NextCronOccurrence(item.CronExpr, time.Now())
	if err != nil {
		s.log.Println("Cron re-arm failed for", item.Name+":", err.Error())
		return
	}
	if err := s.manager.SetTarget(hash, next.UnixMilli()); err != nil {
		s.log.Println("Failed to re-arm countdown:", err.Error())
		return
	}
	if s.pool != nil {
		now := time.Now().UnixMilli()
		s.pool.Broadcast(hash, server.MakeResult(common.UPDATE_TICK, &common.TickResponse{
			Hash:        hash,
			Action:      common.TickRearmed,
			RemainingMs: item.Remaining(now),
			Display:     item.Display(now),
			TargetAt:    item.GetTarget(),
		}))
	}
}

// LoadStartupEvents scans persisted countdowns, fires hooks for targets that
// elapsed while the daemon was down, and enqueues pending elapse events.
func (s *Api) LoadStartupEvents() {
	missed, pending := scheduler.LoadEvents(s.manager.GetItems(), time.Now())
	for _, item := range missed {
		s.log.Println("Countdown elapsed while daemon was down:", item.Name)
		s.HandleElapse(item.Hash)
	}
	for _, ev := range pending {
		s.scheduler.Add(ev)
	}
}
