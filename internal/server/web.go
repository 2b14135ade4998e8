package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	cws "github.com/coder/websocket"
	"github.com/creachadair/jrpc2"
	"github.com/tminus/tminus/common"
	"github.com/tminus/tminus/pkg/tminuslib"
	"golang.org/x/net/websocket"
)

// WebServer exposes the daemon over HTTP: a JSON-RPC 2.0 endpoint (with a
// WebSocket variant) and a live streaming endpoint that pushes one rendered
// tick per second for a single countdown.
type WebServer struct {
	port   int
	l      *log.Logger
	m      *tminuslib.Manager
	pool   *Pool
	rpc    *RPCServer
	server *http.Server
	mu     sync.Mutex
}

// NewWebServer creates a web server bound to the given port. If rpcCfg is nil
// or carries an empty secret, the JSON-RPC endpoints reject all requests.
func NewWebServer(l *log.Logger, m *tminuslib.Manager, pool *Pool, port int, rpcCfg *RPCConfig) *WebServer {
	s := &WebServer{port: port, l: l, m: m, pool: pool}
	if rpcCfg == nil {
		rpcCfg = &RPCConfig{}
	}
	s.rpc = NewRPCServer(rpcCfg, m)
	return s
}

// handleLive streams per-second tick updates for the countdown named by the
// hash query parameter until the client disconnects.
func (s *WebServer) handleLive(conn *websocket.Conn) {
	defer conn.Close()

	hash := conn.Request().URL.Query().Get("hash")
	if hash == "" {
		_ = websocket.JSON.Send(conn, map[string]string{"error": "missing hash"})
		return
	}
	item, err := s.m.GetItem(hash)
	if err != nil {
		_ = websocket.JSON.Send(conn, map[string]string{"error": "countdown not found"})
		return
	}

	var once sync.Once
	done := make(chan struct{})

	// Each live connection drives its own second-aligned render loop; the
	// manager's activation slot stays free for socket watchers.
	cd := tminuslib.NewCountdown(nil)
	cd.SetTarget(item.GetTarget())
	cd.Activate(tminuslib.SinkFunc(func(text string) {
		now := time.Now().UnixMilli()
		action := common.TickProgress
		if item.IsElapsed(now) {
			action = common.TickElapsed
		}
		sendErr := websocket.JSON.Send(conn, &common.TickResponse{
			Hash:        hash,
			Action:      action,
			RemainingMs: item.Remaining(now),
			Display:     text,
			TargetAt:    item.GetTarget(),
		})
		if sendErr != nil {
			once.Do(func() { close(done) })
		}
	}))
	defer cd.Deactivate()

	// Watch for client disconnect.
	go func() {
		var discard []byte
		for {
			if err := websocket.Message.Receive(conn, &discard); err != nil {
				once.Do(func() { close(done) })
				return
			}
		}
	}()

	<-done
}

// handleRPCSocket upgrades the connection to a WebSocket and serves JSON-RPC
// over it until the client disconnects.
func (s *WebServer) handleRPCSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := cws.Accept(w, r, nil)
	if err != nil {
		s.l.Println("WebSocket accept failed:", err.Error())
		return
	}

	ch := &wsChannel{conn: conn, ctx: r.Context()}
	srv := jrpc2.NewServer(s.rpc.methods, nil)
	srv.Start(ch)
	if err := srv.Wait(); err != nil && err != io.EOF {
		s.l.Println("JSON-RPC WebSocket session ended:", err.Error())
	}
	_ = conn.Close(cws.StatusNormalClosure, "")
}

func (s *WebServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/jsonrpc", requireToken(s.rpc.secret, s.rpc.bridge))
	mux.Handle("/jsonrpc/ws", requireToken(s.rpc.secret, http.HandlerFunc(s.handleRPCSocket)))
	mux.Handle("/live", websocket.Handler(s.handleLive))
	return mux
}

func (s *WebServer) addr() string {
	return fmt.Sprintf(":%d", s.port)
}

func (s *WebServer) Start() error {
	s.mu.Lock()
	s.server = &http.Server{
		Addr:    s.addr(),
		Handler: s.handler(),
	}
	s.mu.Unlock()

	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil // Expected during shutdown
	}
	return err
}

// Shutdown gracefully stops the web server and the JSON-RPC bridge.
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rpc != nil {
		s.rpc.Close()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
