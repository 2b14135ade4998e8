package server

import (
	"bytes"
	"net"
	"sync"
	"testing"
)

func TestIntToBytesRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 255, 256, 65535, 1 << 20, 0xFFFFFFFF}
	for _, v := range values {
		b := intToBytes(v)
		if len(b) != 4 {
			t.Fatalf("intToBytes(%d) length = %d, want 4", v, len(b))
		}
		if got := bytesToInt(b); got != v {
			t.Errorf("bytesToInt(intToBytes(%d)) = %d", v, got)
		}
	}
}

func TestIntToBytesLittleEndian(t *testing.T) {
	b := intToBytes(0x01020304)
	want := []byte{0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(b, want) {
		t.Errorf("intToBytes(0x01020304) = %v, want %v", b, want)
	}
}

func TestReadWriteFraming(t *testing.T) {
	client, srv := net.Pipe()
	defer client.Close()
	defer srv.Close()

	payload := []byte(`{"method":"status"}`)

	var wmu, rmu sync.Mutex
	errCh := make(chan error, 1)
	go func() {
		errCh <- write(&wmu, client, payload)
	}()

	got, err := read(&rmu, srv)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("write error: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("read %q, want %q", got, payload)
	}
}

func TestSyncConnRoundTrip(t *testing.T) {
	client, srv := net.Pipe()
	defer client.Close()
	defer srv.Close()

	cc := NewSyncConn(client)
	sc := NewSyncConn(srv)

	payload := []byte("tick")
	errCh := make(chan error, 1)
	go func() {
		errCh <- cc.Write(payload)
	}()

	got, err := sc.Read()
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Read = %q, want %q", got, payload)
	}
}

func TestReadEmptyPayload(t *testing.T) {
	client, srv := net.Pipe()
	defer client.Close()
	defer srv.Close()

	var wmu, rmu sync.Mutex
	errCh := make(chan error, 1)
	go func() {
		errCh <- write(&wmu, client, []byte{})
	}()

	got, err := read(&rmu, srv)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("write error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("read %d bytes, want 0", len(got))
	}
}
