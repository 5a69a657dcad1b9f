package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mikey/phishawk/internal/core"
	"go.uber.org/zap"
)

// DefaultEndpoint is where a locally started backend listens
const DefaultEndpoint = "http://localhost:5000/analyze_text"

// maxResponseSize bounds how much of a response body is read
const maxResponseSize = 1 << 20

// HTTPClient submits extracted emails to the classification service over HTTP
type HTTPClient struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPClient creates a new classification client. A zero timeout disables the deadline.
func NewHTTPClient(endpoint string, timeout time.Duration, httpClient *http.Client, logger *zap.Logger) *HTTPClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &HTTPClient{
		endpoint:   endpoint,
		timeout:    timeout,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Classify posts the email as-is and normalizes whatever verdict shape comes back.
// It makes exactly one request.
func (c *HTTPClient) Classify(ctx context.Context, email core.ExtractedEmail) (core.NormalizedVerdict, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(email)
	if err != nil {
		return core.NormalizedVerdict{}, fmt.Errorf("failed to encode classification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return core.NormalizedVerdict{}, &core.ClassifierError{Kind: core.Unreachable, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := core.Unreachable
		if isTimeout(ctx, err) {
			kind = core.Timeout
		}
		c.logger.Warn("Classification request failed",
			zap.String("endpoint", c.endpoint),
			zap.Stringer("kind", kind),
			zap.Error(err))
		return core.NormalizedVerdict{}, &core.ClassifierError{Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Classification service returned an error status",
			zap.String("endpoint", c.endpoint),
			zap.Int("status_code", resp.StatusCode))
		return core.NormalizedVerdict{}, &core.ClassifierError{Kind: core.ServerError, Status: resp.Status}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		kind := core.MalformedPayload
		if isTimeout(ctx, err) {
			kind = core.Timeout
		}
		return core.NormalizedVerdict{}, &core.ClassifierError{Kind: kind, Err: err}
	}

	verdict, err := core.NormalizeVerdict(raw)
	if err != nil {
		c.logger.Warn("Discarding malformed classification response",
			zap.String("endpoint", c.endpoint),
			zap.Int("body_length", len(raw)),
			zap.Error(err))
		return core.NormalizedVerdict{}, &core.ClassifierError{Kind: core.MalformedPayload, Err: err}
	}

	c.logger.Debug("Classification received",
		zap.Int("score", verdict.Score),
		zap.String("verdict", verdict.Verdict),
		zap.Duration("latency", time.Since(startTime)))

	return verdict, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
