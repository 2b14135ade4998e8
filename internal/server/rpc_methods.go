package server

import (
	"context"
	"errors"
	"time"

	"github.com/adhocore/gronx"
	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/tminus/tminus/internal/scheduler"
	"github.com/tminus/tminus/pkg/tminuslib"
)

// Custom JSON-RPC error codes for countdown operations.
const (
	codeCountdownNotFound = jrpc2.Code(-32001)
	codeCountdownExists   = jrpc2.Code(-32002)
	codeInvalidParams     = jrpc2.Code(-32602)
)

// RPCConfig holds configuration for the JSON-RPC endpoint.
type RPCConfig struct {
	Secret    string // Auth token (required -- empty means RPC disabled)
	Version   string // Daemon version
	Commit    string // Git commit
	BuildType string // Build type
}

// RPCServer manages the JSON-RPC 2.0 bridge and method handlers.
type RPCServer struct {
	bridge    jhttp.Bridge
	methods   handler.Map
	secret    string
	version   string
	commit    string
	buildType string
	manager   *tminuslib.Manager
}

// VersionResult is the response for system.getVersion.
type VersionResult struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildType string `json:"buildType,omitempty"`
}

// RPCAddParams is the input for countdown.add.
type RPCAddParams struct {
	Name     string `json:"name"`
	Target   string `json:"target,omitempty"`
	CronExpr string `json:"cronExpr,omitempty"`
	Hidden   bool   `json:"hidden,omitempty"`
}

// RPCAddResult is the response for countdown.add.
type RPCAddResult struct {
	Hash     string `json:"hash"`
	Name     string `json:"name"`
	TargetAt int64  `json:"targetAt"`
	Display  string `json:"display"`
}

// HashParam is a common input with just a countdown hash.
type HashParam struct {
	Hash string `json:"hash"`
}

// RPCSetTargetParams is the input for countdown.setTarget.
type RPCSetTargetParams struct {
	Hash   string `json:"hash"`
	Target string `json:"target"`
}

// RPCStatusResult is the response for countdown.status and countdown.setTarget.
type RPCStatusResult struct {
	Hash        string `json:"hash"`
	Name        string `json:"name"`
	TargetAt    int64  `json:"targetAt"`
	RemainingMs int64  `json:"remainingMs"`
	Display     string `json:"display"`
	Elapsed     bool   `json:"elapsed"`
	CronExpr    string `json:"cronExpr,omitempty"`
	Hidden      bool   `json:"hidden,omitempty"`
}

// RPCListParams is the input for countdown.list.
type RPCListParams struct {
	Filter string `json:"filter,omitempty"` // "pending", "elapsed", "all" (default)
}

// RPCListResult is the response for countdown.list.
type RPCListResult struct {
	Countdowns []*RPCStatusResult `json:"countdowns"`
}

// EmptyResult is a placeholder for methods that return no data.
type EmptyResult struct{}

// NewRPCServer creates a new RPCServer with method handlers and HTTP bridge.
func NewRPCServer(cfg *RPCConfig, m *tminuslib.Manager) *RPCServer {
	rs := &RPCServer{
		secret:    cfg.Secret,
		version:   cfg.Version,
		commit:    cfg.Commit,
		buildType: cfg.BuildType,
		manager:   m,
	}

	rs.methods = handler.Map{
		"system.getVersion":   handler.New(rs.systemGetVersion),
		"countdown.add":       handler.New(rs.countdownAdd),
		"countdown.remove":    handler.New(rs.countdownRemove),
		"countdown.status":    handler.New(rs.countdownStatus),
		"countdown.setTarget": handler.New(rs.countdownSetTarget),
		"countdown.list":      handler.New(rs.countdownList),
	}

	rs.bridge = jhttp.NewBridge(rs.methods, nil)
	return rs
}

func (rs *RPCServer) systemGetVersion(_ context.Context) (*VersionResult, error) {
	return &VersionResult{
		Version:   rs.version,
		Commit:    rs.commit,
		BuildType: rs.buildType,
	}, nil
}

// countdownAdd creates a new named countdown.
func (rs *RPCServer) countdownAdd(_ context.Context, p *RPCAddParams) (*RPCAddResult, error) {
	if p.Name == "" {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: name"}
	}
	target, err := tminuslib.ParseTarget(p.Target)
	if err != nil {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: err.Error()}
	}
	if p.CronExpr != "" {
		if !gronx.New().IsValid(p.CronExpr) {
			return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "invalid cron expression: " + p.CronExpr}
		}
		if !scheduler.HasOccurrenceWithinYear(p.CronExpr, time.Now()) {
			return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "cron expression has no occurrence within a year: " + p.CronExpr}
		}
	}

	item, err := rs.manager.AddCountdown(p.Name, target, &tminuslib.AddCountdownOpts{
		IsHidden: p.Hidden,
		CronExpr: p.CronExpr,
	})
	if err != nil {
		if errors.Is(err, tminuslib.ErrCountdownExists) {
			return nil, &jrpc2.Error{Code: codeCountdownExists, Message: err.Error()}
		}
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: err.Error()}
	}

	return &RPCAddResult{
		Hash:     item.Hash,
		Name:     item.Name,
		TargetAt: item.GetTarget(),
		Display:  item.Display(time.Now().UnixMilli()),
	}, nil
}

// countdownRemove deletes a countdown.
func (rs *RPCServer) countdownRemove(_ context.Context, p *HashParam) (*EmptyResult, error) {
	if err := rs.manager.RemoveCountdown(p.Hash); err != nil {
		if errors.Is(err, tminuslib.ErrCountdownNotFound) {
			return nil, &jrpc2.Error{Code: codeCountdownNotFound, Message: "countdown not found"}
		}
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: err.Error()}
	}
	return &EmptyResult{}, nil
}

// countdownStatus returns the current state of a countdown.
func (rs *RPCServer) countdownStatus(_ context.Context, p *HashParam) (*RPCStatusResult, error) {
	item, err := rs.manager.GetItem(p.Hash)
	if err != nil {
		return nil, &jrpc2.Error{Code: codeCountdownNotFound, Message: "countdown not found"}
	}
	return itemStatus(item), nil
}

// countdownSetTarget updates a countdown's target timestamp.
func (rs *RPCServer) countdownSetTarget(_ context.Context, p *RPCSetTargetParams) (*RPCStatusResult, error) {
	target, err := tminuslib.ParseTarget(p.Target)
	if err != nil {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: err.Error()}
	}
	if err := rs.manager.SetTarget(p.Hash, target); err != nil {
		if errors.Is(err, tminuslib.ErrCountdownNotFound) {
			return nil, &jrpc2.Error{Code: codeCountdownNotFound, Message: "countdown not found"}
		}
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: err.Error()}
	}
	item, err := rs.manager.GetItem(p.Hash)
	if err != nil {
		return nil, &jrpc2.Error{Code: codeCountdownNotFound, Message: "countdown not found"}
	}
	return itemStatus(item), nil
}

// countdownList returns countdowns, optionally filtered by state.
func (rs *RPCServer) countdownList(_ context.Context, p *RPCListParams) (*RPCListResult, error) {
	var items []*tminuslib.Item

	switch p.Filter {
	case "pending":
		items = rs.manager.GetPendingItems()
	case "elapsed":
		items = rs.manager.GetElapsedItems()
	default:
		items = rs.manager.GetItems()
	}

	countdowns := make([]*RPCStatusResult, 0, len(items))
	for _, item := range items {
		countdowns = append(countdowns, itemStatus(item))
	}
	return &RPCListResult{Countdowns: countdowns}, nil
}

// itemStatus builds the status payload for a countdown item.
func itemStatus(item *tminuslib.Item) *RPCStatusResult {
	now := time.Now().UnixMilli()
	return &RPCStatusResult{
		Hash:        item.Hash,
		Name:        item.Name,
		TargetAt:    item.GetTarget(),
		RemainingMs: item.Remaining(now),
		Display:     item.Display(now),
		Elapsed:     item.IsElapsed(now),
		CronExpr:    item.CronExpr,
		Hidden:      item.Hidden,
	}
}

// Close shuts down the jrpc2 bridge, releasing internal goroutines.
func (rs *RPCServer) Close() {
	rs.bridge.Close()
}
