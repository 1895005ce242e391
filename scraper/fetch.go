package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrResponseNotReceived marks a transport-level retrieval failure: a
// connection error or a non-200 status. It triggers fallback to the next
// strategy and is never retried.
var ErrResponseNotReceived = errors.New("scraper: response not received")

// getPage issues a single GET and returns the response body. Any non-200
// status is a hard failure for the fetch.
func getPage(ctx context.Context, client *http.Client, rawURL string, header http.Header) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	for name, values := range header {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrResponseNotReceived, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d from %s", ErrResponseNotReceived, resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrResponseNotReceived, err)
	}
	return string(body), nil
}
