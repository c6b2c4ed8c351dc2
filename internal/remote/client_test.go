package remote_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/justalter/dancectl/internal/remote"
)

const snapshotJSON = `{
    "a1b2c3d4": {"name": "Spin.unity3d", "author": "tanito", "credits": [], "updated": "2026-01-15"}
}`

func catalogServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(snapshotJSON))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func failingServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_FirstMirror(t *testing.T) {
	var first, second atomic.Int32
	good := catalogServer(t, &first)
	never := catalogServer(t, &second)

	c := remote.NewClient([]string{good.URL, never.URL}, 3, time.Second)
	snapshot, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(snapshot) != 1 || snapshot["a1b2c3d4"] == nil {
		t.Errorf("snapshot = %v", snapshot)
	}
	if first.Load() != 1 {
		t.Errorf("first mirror hit %d times, want 1", first.Load())
	}
	if second.Load() != 0 {
		t.Errorf("second mirror hit %d times despite first success", second.Load())
	}
}

func TestFetch_FallsBackToSecondMirror(t *testing.T) {
	var bad, good atomic.Int32
	down := failingServer(t, &bad)
	up := catalogServer(t, &good)

	c := remote.NewClient([]string{down.URL, up.URL}, 2, time.Second)
	snapshot, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(snapshot) != 1 {
		t.Errorf("snapshot = %v", snapshot)
	}
	if bad.Load() != 2 {
		t.Errorf("failing mirror hit %d times, want full retry budget of 2", bad.Load())
	}
}

func TestFetch_AllMirrorsExhausted(t *testing.T) {
	var a, b atomic.Int32
	m1 := failingServer(t, &a)
	m2 := failingServer(t, &b)

	c := remote.NewClient([]string{m1.URL, m2.URL}, 3, time.Second)
	_, err := c.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error when every mirror fails")
	}
	if !errors.Is(err, remote.ErrUnreachable) {
		t.Errorf("error does not wrap ErrUnreachable: %v", err)
	}
	if a.Load() != 3 || b.Load() != 3 {
		t.Errorf("retry budget not honored: %d / %d, want 3 each", a.Load(), b.Load())
	}
}

func TestFetch_MalformedPayloadIsAFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not a catalog</html>"))
	}))
	t.Cleanup(srv.Close)

	c := remote.NewClient([]string{srv.URL}, 1, time.Second)
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Error("malformed payload should fail the fetch, not read as empty")
	}
}

func TestFetch_EmptyRemoteCatalogIsValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	}))
	t.Cleanup(srv.Close)

	c := remote.NewClient([]string{srv.URL}, 1, time.Second)
	snapshot, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(snapshot) != 0 {
		t.Errorf("snapshot = %v, want empty", snapshot)
	}
}

func TestFetch_ContextCancelled(t *testing.T) {
	var hits atomic.Int32
	srv := failingServer(t, &hits)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := remote.NewClient([]string{srv.URL}, 5, time.Second)
	_, err := c.Fetch(ctx)
	if err == nil {
		t.Fatal("expected error with cancelled context")
	}
	if hits.Load() > 1 {
		t.Errorf("kept retrying after cancellation: %d hits", hits.Load())
	}
}
