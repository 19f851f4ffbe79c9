package testutil

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"
)

// Serving — сервер, запущенный в фоне на случайном порту 127.0.0.1.
type Serving struct {
	Listener net.Listener
	BaseURL  string

	cancel context.CancelFunc
	done   chan error
}

// StartServing запускает serve(ctx, ln) в горутине и ждёт, пока baseURL+readyPath начнёт отвечать.
// ctx отменяется при завершении теста, если тест не остановил сервер сам.
func StartServing(t testing.TB, serve func(context.Context, net.Listener) error, readyPath string) *Serving {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	s := &Serving{
		Listener: ln,
		BaseURL:  "http://" + ln.Addr().String(),
		cancel:   cancel,
		done:     make(chan error, 1),
	}
	go func() { s.done <- serve(ctx, ln) }()

	if err := WaitForHTTPReady(s.BaseURL+readyPath, 5*time.Second); err != nil {
		t.Fatalf("server failed to start: %v", err)
	}
	return s
}

// Stop отменяет ctx сервера и возвращает результат serve.
func (s *Serving) Stop(timeout time.Duration) error {
	s.cancel()
	return s.Wait(timeout)
}

// Wait ждёт завершения serve без отмены ctx (например, после Close).
func (s *Serving) Wait(timeout time.Duration) error {
	select {
	case err := <-s.done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("server did not stop within %v", timeout)
	}
}
