package tminuscli

import (
	"encoding/json"

	"github.com/tminus/tminus/common"
)

// Handler defines the interface for processing daemon updates.
// Implementations receive raw JSON messages and are responsible for
// unmarshaling and processing them appropriately.
type Handler interface {
	Handle(json.RawMessage) error
}

// NewTickHandler creates a handler for countdown tick updates.
// The action parameter filters updates to only those matching the
// specified tick action; pass an empty string to receive all actions.
// The callback is invoked for each matching update.
func NewTickHandler(action common.TickAction, callback func(*common.TickResponse) error) *TickHandler {
	return &TickHandler{
		Action:   action,
		Callback: callback,
	}
}

// TickHandler processes per-second countdown updates from the daemon.
// It filters updates by tick action and invokes a callback for matching ones.
type TickHandler struct {
	Action   common.TickAction
	Callback func(*common.TickResponse) error
}

func (h *TickHandler) Handle(m json.RawMessage) error {
	var v common.TickResponse
	err := json.Unmarshal(m, &v)
	if err != nil {
		return err
	}
	if h.Action != "" && v.Action != h.Action {
		return nil
	}
	return h.Callback(&v)
}
