package tminuscli

import (
	"encoding/json"

	"github.com/tminus/tminus/common"
)

func invoke[T any](c *Client, method common.UpdateType, message any) (*T, error) {
	resp, err := c.invoke(method, message)
	if err != nil {
		return nil, err
	}
	var d T
	return &d, json.Unmarshal(resp, &d)
}

type AddOpts struct {
	CronExpr string `json:"cron_expr,omitempty"`
	IsHidden bool   `json:"is_hidden,omitempty"`
}

// Add creates a new countdown. Target accepts a unix-millisecond
// timestamp or a date string; an empty target creates an unset
// countdown that renders as already elapsed.
func (c *Client) Add(name, target string, opts *AddOpts) (*common.AddResponse, error) {
	if opts == nil {
		opts = &AddOpts{}
	}
	return invoke[common.AddResponse](c, common.UPDATE_ADD, &common.AddParams{
		Name:     name,
		Target:   target,
		CronExpr: opts.CronExpr,
		Hidden:   opts.IsHidden,
	})
}

func (c *Client) Remove(hash string) (bool, error) {
	_, err := c.invoke(common.UPDATE_REMOVE, &common.InputHash{Hash: hash})
	return err == nil, err
}

type ListOpts common.ListParams

func (c *Client) List(opts *ListOpts) (*common.ListResponse, error) {
	if opts == nil {
		opts = &ListOpts{}
	}
	return invoke[common.ListResponse](c, common.UPDATE_LIST, opts)
}

func (c *Client) Status(hash string) (*common.StatusResponse, error) {
	return invoke[common.StatusResponse](c, common.UPDATE_STATUS, &common.InputHash{Hash: hash})
}

// SetTarget moves a countdown's target. An empty target unsets it.
func (c *Client) SetTarget(hash, target string) (*common.SetTargetResponse, error) {
	return invoke[common.SetTargetResponse](c, common.UPDATE_SET_TARGET, &common.SetTargetParams{
		Hash:   hash,
		Target: target,
	})
}

// Watch subscribes the connection to a countdown's tick stream.
// Register a TickHandler and call Listen to receive the updates.
func (c *Client) Watch(hash string) (*common.WatchResponse, error) {
	return invoke[common.WatchResponse](c, common.UPDATE_WATCH, &common.InputHash{Hash: hash})
}

func (c *Client) GetDaemonVersion() (*common.VersionResponse, error) {
	return invoke[common.VersionResponse](c, common.UPDATE_VERSION, nil)
}
