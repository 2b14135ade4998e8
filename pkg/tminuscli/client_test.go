package tminuscli

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/tminus/tminus/common"
)

// serveOne reads a single request off the connection and writes the
// given response back, reporting the parsed request on the channel.
func serveOne(t *testing.T, conn net.Conn, res *Response, reqs chan<- *Request) {
	t.Helper()
	go func() {
		buf, err := read(conn)
		if err != nil {
			return
		}
		var req Request
		if err := json.Unmarshal(buf, &req); err != nil {
			return
		}
		reqs <- &req
		out, err := json.Marshal(res)
		if err != nil {
			return
		}
		_ = write(conn, out)
	}()
}

func marshalUpdate(t *testing.T, utype common.UpdateType, v any) *Update {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal update: %v", err)
	}
	return &Update{Type: utype, Message: b}
}

func TestClientStatus(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer serverConn.Close()
	c := NewClientConn(clientConn)
	defer c.Close()

	reqs := make(chan *Request, 1)
	serveOne(t, serverConn, &Response{
		Ok: true,
		Update: marshalUpdate(t, common.UPDATE_STATUS, &common.StatusResponse{
			Hash:        "abc",
			Name:        "launch",
			RemainingMs: 5000,
			Display:     "5 seconds",
		}),
	}, reqs)

	status, err := c.Status("abc")
	if err != nil {
		t.Fatalf("Status error: %v", err)
	}
	if status.Name != "launch" || status.RemainingMs != 5000 {
		t.Errorf("status = %+v", status)
	}

	req := <-reqs
	if req.Method != common.UPDATE_STATUS {
		t.Errorf("method = %q, want %q", req.Method, common.UPDATE_STATUS)
	}
}

func TestClientErrorResponse(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer serverConn.Close()
	c := NewClientConn(clientConn)
	defer c.Close()

	reqs := make(chan *Request, 1)
	serveOne(t, serverConn, &Response{Ok: false, Error: "countdown not found"}, reqs)

	_, err := c.Status("nope")
	if err == nil || err.Error() != "countdown not found" {
		t.Errorf("error = %v, want countdown not found", err)
	}
}

func TestClientAddSendsParams(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer serverConn.Close()
	c := NewClientConn(clientConn)
	defer c.Close()

	reqs := make(chan *Request, 1)
	serveOne(t, serverConn, &Response{
		Ok:     true,
		Update: marshalUpdate(t, common.UPDATE_ADD, &common.AddResponse{Hash: "h1", Name: "standup"}),
	}, reqs)

	res, err := c.Add("standup", "2026-01-02 09:00", &AddOpts{CronExpr: "0 9 * * *"})
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if res.Hash != "h1" {
		t.Errorf("hash = %q, want h1", res.Hash)
	}

	req := <-reqs
	var params common.AddParams
	b, err := json.Marshal(req.Message)
	if err != nil {
		t.Fatalf("remarshal message: %v", err)
	}
	if err := json.Unmarshal(b, &params); err != nil {
		t.Fatalf("unmarshal params: %v", err)
	}
	if params.Name != "standup" || params.CronExpr != "0 9 * * *" {
		t.Errorf("params = %+v", params)
	}
}

func TestListenDispatchesTicks(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer serverConn.Close()
	c := NewClientConn(clientConn)

	var got []*common.TickResponse
	c.Handle(common.UPDATE_TICK, NewTickHandler("", func(tr *common.TickResponse) error {
		got = append(got, tr)
		if len(got) == 2 {
			return ErrDisconnect
		}
		return nil
	}))

	go func() {
		for i := 0; i < 2; i++ {
			res := &Response{
				Ok: true,
				Update: marshalUpdate(t, common.UPDATE_TICK, &common.TickResponse{
					Hash:    "abc",
					Action:  common.TickProgress,
					Display: "1 minute",
				}),
			}
			out, _ := json.Marshal(res)
			if err := write(serverConn, out); err != nil {
				return
			}
		}
	}()

	done := make(chan error, 1)
	go func() { done <- c.Listen() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Listen error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not return after ErrDisconnect")
	}
	if len(got) != 2 {
		t.Fatalf("received %d ticks, want 2", len(got))
	}
	if got[0].Display != "1 minute" {
		t.Errorf("tick display = %q", got[0].Display)
	}
}

func TestTickHandlerActionFilter(t *testing.T) {
	var calls int
	h := NewTickHandler(common.TickElapsed, func(tr *common.TickResponse) error {
		calls++
		return nil
	})

	progress, _ := json.Marshal(&common.TickResponse{Action: common.TickProgress})
	elapsed, _ := json.Marshal(&common.TickResponse{Action: common.TickElapsed})

	if err := h.Handle(progress); err != nil {
		t.Fatalf("Handle(progress) error: %v", err)
	}
	if err := h.Handle(elapsed); err != nil {
		t.Fatalf("Handle(elapsed) error: %v", err)
	}
	if calls != 1 {
		t.Errorf("callback calls = %d, want 1", calls)
	}
}
