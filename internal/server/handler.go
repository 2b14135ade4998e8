package server

import (
	"encoding/json"

	"github.com/tminus/tminus/common"
)

// HandlerFunc defines the signature for request handlers.
// It receives a synchronized connection, the watcher pool, and the raw JSON
// message body. It returns the update type for the response, the response
// payload, and any error encountered.
type HandlerFunc func(
	conn *SyncConn,
	pool *Pool,
	body json.RawMessage,
) (
	common.UpdateType,
	any,
	error,
)
