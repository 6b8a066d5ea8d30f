package activedata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/renato0307/covdir/internal/domain"
	"github.com/renato0307/covdir/internal/logging"
	"github.com/renato0307/covdir/internal/ports"
)

const (
	maxErrorBodyLength = 200
	maxResponseSize    = 32 << 20
)

// Client implements ports.CoverageLookup against an ActiveData query endpoint
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Verify interface compliance at compile time
var _ ports.CoverageLookup = (*Client)(nil)

// NewClient creates a Client for endpoint. A zero timeout means no client-side limit.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the base URL queries are sent to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// LookupDirectoryCoverage posts a coverage-summary query for the directory
func (c *Client) LookupDirectoryCoverage(ctx context.Context, revision, path, repoSource string) ([]domain.CoverageRecord, error) {
	requestID := uuid.New().String()
	logger := logging.Logger.With("request_id", requestID, "revision", revision, "path", path, "repo", repoSource)

	body, err := json.Marshal(buildDirectoryQuery(revision, path, repoSource))
	if err != nil {
		return nil, domain.NewLookupError(domain.LookupQueryError, err, "failed to encode query: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewLookupError(domain.LookupNetworkError, err, "failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	logger.Debug("Querying coverage service")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Coverage query failed", "error", err)
		return nil, domain.NewLookupError(domain.LookupNetworkError, err, "%s", describeTransportError(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, domain.NewLookupError(domain.LookupNetworkError, err, "failed to read response: %v", err)
	}

	logger.Debug("Coverage service responded",
		"status", resp.StatusCode,
		"bytes", len(data),
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewLookupError(domain.LookupHTTPError, nil,
			"%s: %s", resp.Status, trimBody(data))
	}

	var decoded queryResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, domain.NewLookupError(domain.LookupDecodeError, err, "invalid response: %v", err)
	}
	if decoded.failed() {
		return nil, domain.NewLookupError(domain.LookupQueryError, nil, "%s", decoded.errorMessage())
	}

	if decoded.Data == nil {
		return []domain.CoverageRecord{}, nil
	}
	return decoded.Data, nil
}

func describeTransportError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "request canceled"
	}
	return err.Error()
}

func trimBody(data []byte) string {
	text := strings.TrimSpace(string(data))
	if len(text) > maxErrorBodyLength {
		return text[:maxErrorBodyLength] + "..."
	}
	if text == "" {
		return "empty response"
	}
	return text
}
