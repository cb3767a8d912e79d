package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServer_ServeAndShutdownOrder(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := New(handler, Options{ShutdownTimeout: 5 * time.Second}, discardLogger())

	var order []string
	srv.OnShutdown("store", func(ctx context.Context) error {
		order = append(order, "store")
		return nil
	})
	srv.OnShutdown("cache", func(ctx context.Context) error {
		order = append(order, "cache")
		return nil
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := waitForServer("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	if len(order) != 2 || order[0] != "cache" || order[1] != "store" {
		t.Errorf("shutdown order = %v, want [cache store]", order)
	}
}

func TestServer_ShutdownErrorsAreJoined(t *testing.T) {
	srv := New(http.NotFoundHandler(), Options{ShutdownTimeout: time.Second}, discardLogger())

	errStore := errors.New("store close failed")
	srv.OnShutdown("store", func(ctx context.Context) error { return errStore })
	srv.OnShutdown("cache", func(ctx context.Context) error { return nil })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = srv.Serve(ctx, ln)
	if !errors.Is(err, errStore) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestServer_Addr(t *testing.T) {
	srv := New(http.NotFoundHandler(), Options{Port: 3000}, nil)
	if srv.Addr() != ":3000" {
		t.Errorf("Addr() = %q", srv.Addr())
	}
}

func waitForServer(url string) (*http.Response, error) {
	var lastErr error
	for i := 0; i < 50; i++ {
		resp, err := http.Get(url)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		time.Sleep(20 * time.Millisecond)
	}
	return nil, lastErr
}
