// Package simulator — health_test.go verifies the startup readiness
// poll against a local test HTTP server.
package simulator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWaitReadyImmediate verifies the happy path: the first probe is
// accepted and WaitReady returns without sleeping.
func TestWaitReadyImmediate(t *testing.T) {
	var path atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path.Store(r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	checker := &HealthChecker{ProxyURL: srv.URL, Interval: time.Millisecond, Attempts: 3}
	require.NoError(t, checker.WaitReady(context.Background()))

	assert.Equal(t, "/simulator/generate-blocks-until-epoch-reached/2", path.Load())
}

// TestWaitReadyRetriesUntilReady verifies that early rejections are
// retried and a later acceptance succeeds.
func TestWaitReadyRetriesUntilReady(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			// Node not started yet.
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	checker := &HealthChecker{ProxyURL: srv.URL, Interval: time.Millisecond, Attempts: 10}
	require.NoError(t, checker.WaitReady(context.Background()))
	assert.Equal(t, int32(3), calls.Load())
}

// TestWaitReadyExhaustsAttempts verifies the failure after the attempt
// budget is spent.
func TestWaitReadyExhaustsAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	checker := &HealthChecker{ProxyURL: srv.URL, Interval: time.Millisecond, Attempts: 4}
	err := checker.WaitReady(context.Background())
	assert.Error(t, err)
}

// TestWaitReadyCancelled verifies that context cancellation aborts the
// poll between attempts.
func TestWaitReadyCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker := &HealthChecker{ProxyURL: srv.URL, Interval: time.Hour, Attempts: 10}
	err := checker.WaitReady(ctx)
	assert.Error(t, err)
}
