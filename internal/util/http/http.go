// Package http fetches remote images for the palette pipeline.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmylchreest/themerator/internal/version"
)

const (
	// DefaultTimeout bounds a single image download.
	DefaultTimeout = 10 * time.Second

	// maxImageBytes caps the response body so a misbehaving server
	// cannot exhaust memory before decoding even starts.
	maxImageBytes = 32 << 20
)

// Fetch downloads an image over HTTP(S) and returns the raw bytes for
// decoding.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	client := &http.Client{Timeout: DefaultTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", fmt.Sprintf("themerator/%s", version.Version))

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}

	return data, nil
}
