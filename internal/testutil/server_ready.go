package testutil

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"
)

// WaitForHTTPReady опрашивает url, пока сервер не ответит (любым статусом) или не истечёт timeout.
// Используется вместо time.Sleep; обычно через StartServing.
func WaitForHTTPReady(url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client := &http.Client{Timeout: 100 * time.Millisecond}

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for server at %s: %w", url, ctx.Err())
		case <-ticker.C:
			resp, err := client.Get(url)
			if err == nil {
				_ = resp.Body.Close()
				return nil
			}
		}
	}
}

// WaitFor ждёт пока check вернёт true (polling с timeout), иначе валит тест.
func WaitFor(t testing.TB, check func() bool, timeout time.Duration) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		if check() {
			return
		}
		select {
		case <-ctx.Done():
			t.Fatalf("condition not met within %v", timeout)
			return
		case <-ticker.C:
		}
	}
}
