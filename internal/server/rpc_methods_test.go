package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/tminus/tminus/pkg/tminuslib"
)

// newTestRPCServer creates an RPCServer backed by a temp-dir manager, mounts
// it behind token auth on an httptest server, and returns the base URL and
// auth secret.
func newTestRPCServer(t *testing.T) (*tminuslib.Manager, string, string) {
	t.Helper()
	m, err := tminuslib.InitManagerWithStore(filepath.Join(t.TempDir(), "countdowns.db"), nil)
	if err != nil {
		t.Fatalf("InitManagerWithStore error: %v", err)
	}
	secret := "rpc-test-secret"
	rs := NewRPCServer(&RPCConfig{Secret: secret, Version: "1.0.0", Commit: "abc123"}, m)
	srv := httptest.NewServer(requireToken(secret, rs.bridge))
	t.Cleanup(func() {
		srv.Close()
		rs.Close()
		m.Close()
	})
	return m, srv.URL, secret
}

// rpcCall sends a JSON-RPC request and returns the parsed response envelope.
func rpcCall(t *testing.T, url, secret, method string, params any) map[string]any {
	t.Helper()
	reqBody := map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
	}
	if params != nil {
		reqBody["params"] = params
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+secret)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	var envelope map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

// rpcErrorCode extracts the JSON-RPC error code from a response envelope.
func rpcErrorCode(t *testing.T, envelope map[string]any) int {
	t.Helper()
	errObj, ok := envelope["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error in response, got %v", envelope)
	}
	code, ok := errObj["code"].(float64)
	if !ok {
		t.Fatalf("error has no numeric code: %v", errObj)
	}
	return int(code)
}

func rpcResult(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	res, ok := envelope["result"].(map[string]any)
	if !ok {
		t.Fatalf("expected result in response, got %v", envelope)
	}
	return res
}

func TestRPCSystemGetVersion(t *testing.T) {
	_, url, secret := newTestRPCServer(t)

	envelope := rpcCall(t, url, secret, "system.getVersion", nil)
	result := rpcResult(t, envelope)

	if result["version"] != "1.0.0" {
		t.Errorf("version = %v, want 1.0.0", result["version"])
	}
	if result["commit"] != "abc123" {
		t.Errorf("commit = %v, want abc123", result["commit"])
	}
}

func TestRPCAuthRequired(t *testing.T) {
	_, url, _ := newTestRPCServer(t)

	resp, err := http.Post(url, "application/json",
		bytes.NewReader([]byte(`{"jsonrpc":"2.0","id":1,"method":"system.getVersion"}`)))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestRPCAddMissingName(t *testing.T) {
	_, url, secret := newTestRPCServer(t)

	envelope := rpcCall(t, url, secret, "countdown.add", map[string]any{"target": "2030-01-01 00:00"})
	if code := rpcErrorCode(t, envelope); code != int(codeInvalidParams) {
		t.Errorf("error code = %d, want %d", code, codeInvalidParams)
	}
}

func TestRPCAddInvalidTarget(t *testing.T) {
	_, url, secret := newTestRPCServer(t)

	envelope := rpcCall(t, url, secret, "countdown.add", map[string]any{
		"name":   "bad",
		"target": "not-a-date",
	})
	if code := rpcErrorCode(t, envelope); code != int(codeInvalidParams) {
		t.Errorf("error code = %d, want %d", code, codeInvalidParams)
	}
}

func TestRPCAddInvalidCron(t *testing.T) {
	_, url, secret := newTestRPCServer(t)

	envelope := rpcCall(t, url, secret, "countdown.add", map[string]any{
		"name":     "badcron",
		"cronExpr": "nope nope",
	})
	if code := rpcErrorCode(t, envelope); code != int(codeInvalidParams) {
		t.Errorf("error code = %d, want %d", code, codeInvalidParams)
	}
}

func TestRPCAddImpossibleCron(t *testing.T) {
	_, url, secret := newTestRPCServer(t)

	// February 30th parses but never occurs.
	envelope := rpcCall(t, url, secret, "countdown.add", map[string]any{
		"name":     "never",
		"cronExpr": "0 0 30 2 *",
	})
	if code := rpcErrorCode(t, envelope); code != int(codeInvalidParams) {
		t.Errorf("error code = %d, want %d", code, codeInvalidParams)
	}
}

func TestRPCAddStatusSetTargetRemoveFlow(t *testing.T) {
	_, url, secret := newTestRPCServer(t)

	envelope := rpcCall(t, url, secret, "countdown.add", map[string]any{
		"name":   "launch",
		"target": "9999999999999",
	})
	added := rpcResult(t, envelope)
	hash, _ := added["hash"].(string)
	if hash == "" {
		t.Fatal("add returned empty hash")
	}
	if added["name"] != "launch" {
		t.Errorf("name = %v, want launch", added["name"])
	}

	envelope = rpcCall(t, url, secret, "countdown.status", map[string]any{"hash": hash})
	status := rpcResult(t, envelope)
	if status["elapsed"] != false {
		t.Errorf("elapsed = %v, want false", status["elapsed"])
	}
	if status["display"] == tminuslib.ElapsedText {
		t.Error("future target rendered as elapsed")
	}

	envelope = rpcCall(t, url, secret, "countdown.setTarget", map[string]any{
		"hash":   hash,
		"target": "",
	})
	status = rpcResult(t, envelope)
	if status["targetAt"] != float64(0) {
		t.Errorf("targetAt after unset = %v, want 0", status["targetAt"])
	}
	if status["display"] != tminuslib.ElapsedText {
		t.Errorf("display = %v, want %q", status["display"], tminuslib.ElapsedText)
	}

	envelope = rpcCall(t, url, secret, "countdown.remove", map[string]any{"hash": hash})
	rpcResult(t, envelope)

	envelope = rpcCall(t, url, secret, "countdown.status", map[string]any{"hash": hash})
	if code := rpcErrorCode(t, envelope); code != int(codeCountdownNotFound) {
		t.Errorf("error code = %d, want %d", code, codeCountdownNotFound)
	}
}

func TestRPCAddDuplicateName(t *testing.T) {
	_, url, secret := newTestRPCServer(t)

	envelope := rpcCall(t, url, secret, "countdown.add", map[string]any{"name": "dup"})
	rpcResult(t, envelope)

	envelope = rpcCall(t, url, secret, "countdown.add", map[string]any{"name": "dup"})
	if code := rpcErrorCode(t, envelope); code != int(codeCountdownExists) {
		t.Errorf("error code = %d, want %d", code, codeCountdownExists)
	}
}

func TestRPCListFilters(t *testing.T) {
	m, url, secret := newTestRPCServer(t)

	if _, err := m.AddCountdown("pending-one", 9999999999999, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddCountdown("elapsed-one", 1, nil); err != nil {
		t.Fatal(err)
	}

	envelope := rpcCall(t, url, secret, "countdown.list", map[string]any{})
	all := rpcResult(t, envelope)["countdowns"].([]any)
	if len(all) != 2 {
		t.Fatalf("all list = %d entries, want 2", len(all))
	}

	envelope = rpcCall(t, url, secret, "countdown.list", map[string]any{"filter": "pending"})
	pending := rpcResult(t, envelope)["countdowns"].([]any)
	if len(pending) != 1 {
		t.Fatalf("pending list = %d entries, want 1", len(pending))
	}
	first := pending[0].(map[string]any)
	if first["name"] != "pending-one" {
		t.Errorf("pending entry = %v, want pending-one", first["name"])
	}

	envelope = rpcCall(t, url, secret, "countdown.list", map[string]any{"filter": "elapsed"})
	elapsed := rpcResult(t, envelope)["countdowns"].([]any)
	if len(elapsed) != 1 {
		t.Fatalf("elapsed list = %d entries, want 1", len(elapsed))
	}
}

func TestRPCSetTargetUnknownHash(t *testing.T) {
	_, url, secret := newTestRPCServer(t)

	envelope := rpcCall(t, url, secret, "countdown.setTarget", map[string]any{
		"hash":   "nope",
		"target": "1000",
	})
	if code := rpcErrorCode(t, envelope); code != int(codeCountdownNotFound) {
		t.Errorf("error code = %d, want %d", code, codeCountdownNotFound)
	}
}
