package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/i474232898/weather-search/internal/weather"
)

// HTTPClientConfig bundles the HTTP client and request observation hook.
type HTTPClientConfig struct {
	Client *http.Client

	// Observe, when set, receives the duration of every provider request.
	Observe func(operation string, d time.Duration)
}

var errNoHTTPClient = errors.New("http client not configured")

// getJSON issues a single GET request and decodes a 2xx body into target.
// There are no retries: a failed call is a one-shot result.
//
// 400 and 404 map to weather.ErrNotFound; any other failure maps to
// weather.ErrProviderUnavailable.
func getJSON(ctx context.Context, cfg HTTPClientConfig, operation, u string, target interface{}) error {
	if cfg.Client == nil {
		return errNoHTTPClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := cfg.Client.Do(req)
	if cfg.Observe != nil {
		cfg.Observe(operation, time.Since(start))
	}
	if err != nil {
		return fmt.Errorf("%w: %v", weather.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", weather.ErrNotFound, readMessage(resp.Body))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d", weather.ErrProviderUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", weather.ErrProviderUnavailable, operation, err)
	}
	return nil
}

// readMessage extracts the provider's error message, falling back to the raw body.
func readMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return err.Error()
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	return string(body)
}
