package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/printshop-console/internal/dto"
	appErrors "github.com/noah-isme/printshop-console/pkg/errors"
	"github.com/noah-isme/printshop-console/pkg/middleware/requestid"
)

const defaultTimeout = 10 * time.Second

// RequestObserver records outbound calls, e.g. into Prometheus.
type RequestObserver interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// Client talks JSON to the inventory backend.
type Client struct {
	baseURL  string
	http     *http.Client
	observer RequestObserver
	logger   *zap.Logger
}

// NewClient builds a client for baseURL. observer may be nil.
func NewClient(baseURL string, timeout time.Duration, observer RequestObserver, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		observer: observer,
		logger:   logger,
	}
}

// Do issues one request and returns the raw response body of a 2xx answer.
// Every other outcome is mapped onto the console error taxonomy.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}
	reqID := requestid.New()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestid.HeaderKey, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.Duration("latency", duration),
		zap.String("request_id", reqID),
	}

	if err != nil {
		c.observe(method, path, 0, duration)
		c.logger.Warn("backend request failed", append(fields, zap.Error(err))...)
		return nil, appErrors.Transport(err, 0, "backend unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	c.observe(method, path, resp.StatusCode, duration)
	fields = append(fields, zap.Int("status", resp.StatusCode))
	if err != nil {
		c.logger.Warn("backend response unreadable", append(fields, zap.Error(err))...)
		return nil, appErrors.Transport(err, resp.StatusCode, "read backend response")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Debug("backend request", fields...)
		return raw, nil
	}

	c.logger.Warn("backend rejected request", fields...)
	return nil, decodeError(resp.StatusCode, raw)
}

func (c *Client) observe(method, path string, status int, duration time.Duration) {
	if c.observer != nil {
		c.observer.ObserveHTTPRequest(method, path, status, duration)
	}
}

// decodeError maps a non-2xx answer. Field messages turn 400 and 422 into
// server validation errors; 404 becomes not found; anything else is a
// transport failure carrying the status.
func decodeError(status int, raw []byte) error {
	var body dto.ErrorBody
	_ = json.Unmarshal(raw, &body)

	fields := body.FieldErrors
	if len(fields) == 0 && len(body.Errors) > 0 {
		names := make([]string, 0, len(body.Errors))
		for name := range body.Errors {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fields = append(fields, appErrors.FieldError{Field: name, Message: body.Errors[name]})
		}
	}

	switch {
	case status == http.StatusNotFound:
		msg := body.Message
		if msg == "" {
			msg = appErrors.ErrNotFound.Message
		}
		return appErrors.Clone(appErrors.ErrNotFound, msg)
	case (status == http.StatusBadRequest || status == http.StatusUnprocessableEntity) && len(fields) > 0:
		return appErrors.ServerValidation(status, body.Message, fields)
	default:
		msg := body.Message
		if msg == "" {
			msg = fmt.Sprintf("backend answered %d %s", status, http.StatusText(status))
		}
		return appErrors.Transport(errors.New(http.StatusText(status)), status, msg)
	}
}
