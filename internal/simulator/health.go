// health.go implements the startup readiness poll for the chain
// simulator service.
//
// Readiness is probed the same way the external tool does it: by
// asking the simulator proxy to generate blocks until epoch 2. The
// node rejects the request until it is fully started, so the first
// accepted request both confirms readiness and leaves the chain in a
// usable epoch.
package simulator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Catenscia/mxops-runner/internal/model"
)

// startupEpoch is the epoch the chain is advanced to during the
// readiness probe.
const startupEpoch = 2

// maxStartupAttempts bounds the readiness poll. One attempt per
// second, so this is roughly the startup budget in seconds.
const maxStartupAttempts = 60

// generateBlocksPath is the simulator proxy endpoint that advances the
// chain to the given epoch.
const generateBlocksPath = "/simulator/generate-blocks-until-epoch-reached/%d"

// HealthChecker polls a chain simulator proxy for readiness.
type HealthChecker struct {
	// ProxyURL is the base URL of the simulator proxy.
	ProxyURL string

	// Interval between attempts. Defaults to one second.
	Interval time.Duration

	// Attempts is the maximum number of probe attempts.
	// Defaults to maxStartupAttempts.
	Attempts int

	// HTTPClient defaults to a client with a per-request timeout.
	HTTPClient *http.Client
}

// WaitReady blocks until the simulator accepts the epoch generation
// request, the attempt budget is exhausted, or the context is
// cancelled.
func (h *HealthChecker) WaitReady(ctx context.Context) error {
	interval := h.Interval
	if interval <= 0 {
		interval = time.Second
	}
	attempts := h.Attempts
	if attempts <= 0 {
		attempts = maxStartupAttempts
	}
	httpClient := h.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	url := h.ProxyURL + fmt.Sprintf(generateBlocksPath, startupEpoch)

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return model.WrapCLIError(model.ExitUserCancelled,
					"simulator startup wait interrupted", ctx.Err())
			case <-time.After(interval):
			}
		}

		lastErr = probe(ctx, httpClient, url)
		if lastErr == nil {
			return nil
		}
	}

	return model.WrapCLIError(model.ExitGeneralError,
		fmt.Sprintf("chain simulator failed to start within %d attempts", attempts), lastErr)
}

// probe sends one epoch generation request. Any transport error or
// non-2xx status means the node is not ready yet.
func probe(ctx context.Context, httpClient *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	// Drain the body so the connection can be reused across attempts.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("simulator proxy returned status %d", resp.StatusCode)
	}
	return nil
}
