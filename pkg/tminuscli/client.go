package tminuscli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/tminus/tminus/common"
)

// dialFunc points to the network dialer. Tests replace it to avoid
// needing a running daemon.
var dialFunc = net.Dial

type Client struct {
	mu   *sync.RWMutex
	d    *Dispatcher
	conn net.Conn
}

// NewClient connects to the daemon, spawning it first if it is not
// already running.
func NewClient() (*Client, error) {
	if err := ensureDaemon(); err != nil {
		return nil, err
	}
	conn, err := dial()
	if err != nil {
		return nil, fmt.Errorf("error connecting to server: %s", err.Error())
	}
	return NewClientConn(conn), nil
}

// NewClientConn wraps an existing connection to the daemon.
func NewClientConn(conn net.Conn) *Client {
	return &Client{
		conn: conn,
		mu:   &sync.RWMutex{},
		d:    &Dispatcher{},
	}
}

// Handle registers a handler for push updates of the given type
// received while listening.
func (c *Client) Handle(utype common.UpdateType, h Handler) {
	if c.d.Handlers == nil {
		c.d.Handlers = make(map[common.UpdateType]Handler)
	}
	c.d.Handlers[utype] = h
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Listen reads pushed updates off the connection and dispatches them to
// registered handlers until the connection drops or a handler returns
// ErrDisconnect.
func (c *Client) Listen() (err error) {
	defer c.conn.Close()
	for {
		c.mu.RLock()
		var buf []byte
		buf, err = read(c.conn)
		if err != nil {
			c.mu.RUnlock()
			err = fmt.Errorf("error reading: %s", err.Error())
			return
		}
		err = c.d.process(buf)
		if err != nil {
			c.mu.RUnlock()
			if err == ErrDisconnect {
				err = nil
				break
			}
			err = fmt.Errorf("error processing: %s", err.Error())
			return
		}
		c.mu.RUnlock()
	}
	return
}

func (c *Client) invoke(method common.UpdateType, message any) (json.RawMessage, error) {
	// block the updates listener while invoking a method
	// to retrieve the reply here instead
	c.mu.Lock()
	defer c.mu.Unlock()
	buf, err := json.Marshal(&Request{
		Method:  method,
		Message: message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %s", method, err.Error())
	}
	err = write(c.conn, buf)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %s", method, err.Error())
	}
	buf, err = read(c.conn)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %s", method, err.Error())
	}
	var res Response
	err = json.Unmarshal(buf, &res)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %s", method, err.Error())
	}
	if !res.Ok {
		return nil, errors.New(res.Error)
	}
	if res.Update == nil {
		return nil, nil
	}
	return res.Update.Message, nil
}
