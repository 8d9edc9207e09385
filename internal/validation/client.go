package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultSubmitTimeout bounds a run submission. Acceptance-mode runs
	// invoke the live reasoning backend, so this is deliberately generous.
	DefaultSubmitTimeout = 30 * time.Second

	// DefaultRequestTimeout bounds the lightweight catalog and latest-run
	// lookups.
	DefaultRequestTimeout = 10 * time.Second
)

// Client is the interface to the External Validation Service.
type Client interface {
	// ListDatasets fetches the dataset catalog.
	ListDatasets(ctx context.Context) ([]Dataset, error)

	// LatestRun fetches the most recent run. (nil, nil) means no prior run
	// exists; that is not an error.
	LatestRun(ctx context.Context) (*Run, error)

	// SubmitRun submits a run request and returns the full run snapshot.
	SubmitRun(ctx context.Context, req RunRequest) (*Run, error)

	// FetchEvidence downloads the evidence bundle for a terminal run.
	FetchEvidence(ctx context.Context, runID string) ([]byte, error)
}

// httpClient implements Client against the service's HTTP surface.
type httpClient struct {
	baseURL       string
	token         string
	httpClient    *http.Client
	submitClient  *http.Client
	submitTimeout time.Duration
}

// ClientOption configures the HTTP client.
type ClientOption func(*httpClient)

// WithSubmitTimeout overrides the run submission timeout.
func WithSubmitTimeout(d time.Duration) ClientOption {
	return func(c *httpClient) {
		if d > 0 {
			c.submitTimeout = d
		}
	}
}

// WithHTTPClient substitutes the underlying http.Client, mainly for tests.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *httpClient) {
		c.httpClient = h
	}
}

// NewClient creates a validation service client. The token is the opaque
// bearer credential attached to evidence downloads; it may be empty when
// evidence access is not needed.
func NewClient(baseURL, token string, opts ...ClientOption) (Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("service URL is required")
	}
	c := &httpClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		token:         token,
		submitTimeout: DefaultSubmitTimeout,
		httpClient:    &http.Client{Timeout: DefaultRequestTimeout},
		// Submissions are bounded per-request via context so the shared
		// client-level timeout cannot cut a slow acceptance run short.
		submitClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListDatasets implements Client.
func (c *httpClient) ListDatasets(ctx context.Context) ([]Dataset, error) {
	body, err := c.get(ctx, "/validation/datasets", false)
	if err != nil {
		return nil, err
	}

	var wires []datasetWire
	if err := json.Unmarshal(body, &wires); err != nil {
		return nil, newError(KindServerError, "failed to parse dataset catalog", err)
	}

	datasets := make([]Dataset, 0, len(wires))
	for _, w := range wires {
		datasets = append(datasets, datasetFromWire(w))
	}
	return datasets, nil
}

// LatestRun implements Client.
func (c *httpClient) LatestRun(ctx context.Context) (*Run, error) {
	body, err := c.get(ctx, "/validation/runs/latest", false)
	if err != nil {
		return nil, err
	}

	run, err := DecodeRun(body)
	if err != nil {
		return nil, newError(KindServerError, "failed to parse latest run", err)
	}
	return run, nil
}

// SubmitRun implements Client. The submission is a single round trip bounded
// by the submit timeout; it is never retried here, because a run writes to
// external memory and workflow stores and a retry could execute it twice.
func (c *httpClient) SubmitRun(ctx context.Context, req RunRequest) (*Run, error) {
	payload, err := json.Marshal(requestToWire(req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.submitTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/validation/run", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-Id", uuid.NewString())

	body, err := c.doRaw(c.submitClient, httpReq)
	if err != nil {
		return nil, err
	}

	run, err := DecodeRun(body)
	if err != nil {
		return nil, newError(KindServerError, "failed to parse run snapshot", err)
	}
	if run == nil {
		return nil, newError(KindServerError, "service returned an empty run snapshot", nil)
	}
	return run, nil
}

// FetchEvidence implements Client. The evidence endpoint requires the bearer
// credential; the bundle is returned as raw bytes.
func (c *httpClient) FetchEvidence(ctx context.Context, runID string) ([]byte, error) {
	if runID == "" {
		return nil, newError(KindNotFound, "no run id available", nil)
	}
	return c.get(ctx, "/validation/runs/"+url.PathEscape(runID)+"/evidence", true)
}

// get performs a GET against the service and returns the response body.
func (c *httpClient) get(ctx context.Context, path string, authenticated bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.doRaw(c.httpClient, req)
}

// doRaw executes the request and maps transport and HTTP failures onto the
// error taxonomy.
func (c *httpClient) doRaw(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(KindServiceUnavailable, "failed to read response", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, newError(KindNotFound, serverMessage(body), nil)
	default:
		msg := serverMessage(body)
		if msg == "" {
			msg = fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
		}
		return nil, newError(KindServerError, msg, nil)
	}
}

// classifyTransportError distinguishes a deadline from an unreachable
// service. Both leave the coordinator Errored, but the kinds surface
// differently to the user.
func classifyTransportError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindTimeout, "request exceeded the configured timeout", err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return newError(KindTimeout, "request exceeded the configured timeout", err)
	}
	return newError(KindServiceUnavailable, "validation service is unreachable", err)
}

// serverMessage extracts a server-supplied error message, if the body carries
// one. The service responds with {"error": "..."} on failures.
func serverMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return ""
}
