package authority

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cosmoforge/minecore/internal/domain"
	"github.com/cosmoforge/minecore/internal/logger"
)

// Client handles communication with the remote game authority. It is the
// only component that speaks HTTP to the authority; everything above it
// works with domain types and domain errors.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	APIKey  string
}

// NewClient creates a new authority client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
		APIKey:  apiKey,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// doRead performs a GET with retry and exponential backoff. Reads are safe
// to repeat; transient server errors are retried here rather than surfaced.
func (c *Client) doRead(ctx context.Context, path string, out interface{}) error {
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 0; attempt <= MaxReadRetries; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := RetryBaseDelay*time.Duration(1<<uint(attempt-1)) + jitter
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", domain.ErrNetwork, ctx.Err())
			}
			log.Info(LogMsgRetryingRequest, "attempt", attempt, "path", path, "delay", delay)
		}

		resp, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			lastErr = err
			log.Warn(LogMsgRequestFailed, "error", err, "attempt", attempt)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			log.Warn(LogMsgServerError, "status", resp.StatusCode, "attempt", attempt)
			continue
		}

		return decodeResponse(resp, out)
	}

	return fmt.Errorf("%w: %v", domain.ErrNetwork, lastErr)
}

// doMutation performs a POST exactly once. A failed financial mutation is
// returned to the caller; silently retrying one is unsafe.
func (c *Client) doMutation(ctx context.Context, path string, body, out interface{}) error {
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	return decodeResponse(resp, out)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}

	return c.HTTP.Do(req)
}

// decodeResponse maps authority responses onto domain types and errors.
// 409 means the request conflicted with authoritative state (stale
// collection marker, invalid deposit transition); the body's error string
// selects the domain error.
func decodeResponse(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	var apiErr errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)

	if resp.StatusCode == http.StatusConflict {
		switch apiErr.Error {
		case domain.ErrMsgStaleCollection:
			return domain.ErrStaleCollection
		case domain.ErrMsgDepositNotReady:
			return domain.ErrDepositNotReady
		case domain.ErrMsgDepositMatured:
			return domain.ErrDepositMatured
		case domain.ErrMsgInsufficientFunds:
			return domain.ErrInsufficientFunds
		}
	}

	if apiErr.Error != "" {
		return fmt.Errorf("%w: %s (status %d)", domain.ErrAuthority, apiErr.Error, resp.StatusCode)
	}
	return fmt.Errorf("%w: status %d", domain.ErrAuthority, resp.StatusCode)
}

// GetPlayerSnapshot fetches the authoritative player snapshot: balances,
// per-zone equipment and resource facts, and active deposits.
func (c *Client) GetPlayerSnapshot(ctx context.Context, playerID string) (*domain.PlayerSnapshot, error) {
	var snap domain.PlayerSnapshot
	if err := c.doRead(ctx, fmt.Sprintf(PathSnapshot, playerID), &snap); err != nil {
		return nil, err
	}
	snap.FetchedAt = time.Now()
	return &snap, nil
}

type collectRequest struct {
	Marker time.Time `json:"last_collection_at"`
}

// Collect asks the authority to credit a zone's accrual. The marker is the
// last authoritative collection time the engine observed; the authority
// rejects stale or duplicate markers, which makes the command idempotent.
func (c *Client) Collect(ctx context.Context, playerID string, zone int, marker time.Time) (*domain.PlayerSnapshot, error) {
	var snap domain.PlayerSnapshot
	err := c.doMutation(ctx, fmt.Sprintf(PathCollect, playerID, zone), collectRequest{Marker: marker}, &snap)
	if err != nil {
		return nil, err
	}
	snap.FetchedAt = time.Now()
	return &snap, nil
}
