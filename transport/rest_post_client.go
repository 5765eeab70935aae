package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-remoteauth/core"
	"github.com/google/uuid"
)

const KindREST = "rest"

const HeaderRequestID = "X-Request-ID"

const defaultRESTClientTimeout = 30 * time.Second
const defaultRESTResponseBodyLimit int64 = 1 << 20 // 1 MiB

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RESTPostClient posts JSON encoded bodies and decodes JSON responses. Any
// status code the server answers with is returned as a response.
type RESTPostClient[T any, R any] struct {
	Client               HTTPDoer
	DefaultHeaders       map[string]string
	MaxResponseBodyBytes int64
	Logger               core.Logger
	Metrics              core.MetricsRecorder
}

func NewRESTPostClient[T any, R any](client HTTPDoer) *RESTPostClient[T, R] {
	if client == nil {
		client = &http.Client{Timeout: defaultRESTClientTimeout}
	}
	return &RESTPostClient[T, R]{
		Client:               client,
		DefaultHeaders:       map[string]string{},
		MaxResponseBodyBytes: defaultRESTResponseBodyLimit,
		Logger:               glog.Nop(),
		Metrics:              core.NopMetricsRecorder{},
	}
}

func (*RESTPostClient[T, R]) Kind() string {
	return KindREST
}

func (c *RESTPostClient[T, R]) Post(ctx context.Context, req core.PostRequest[T]) (core.PostResponse[R], error) {
	if c == nil || c.Client == nil {
		return core.PostResponse[R]{}, transportError(
			"transport: rest post client requires an http client",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			map[string]any{"adapter": KindREST},
		)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rawURL := strings.TrimSpace(req.URL)
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return core.PostResponse[R]{}, transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: invalid request url",
			http.StatusBadRequest,
			map[string]any{"adapter": KindREST, "url": rawURL},
		)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return core.PostResponse[R]{}, transportError(
			"transport: request url must be absolute",
			goerrors.CategoryBadInput,
			http.StatusBadRequest,
			map[string]any{"adapter": KindREST, "url": rawURL},
		)
	}

	payload, err := json.Marshal(req.Body)
	if err != nil {
		return core.PostResponse[R]{}, transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: encode request body",
			http.StatusBadRequest,
			map[string]any{"adapter": KindREST, "url": parsedURL.String()},
		)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, parsedURL.String(), bytes.NewReader(payload))
	if err != nil {
		return core.PostResponse[R]{}, transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: create http request",
			http.StatusBadRequest,
			map[string]any{"adapter": KindREST, "url": parsedURL.String()},
		)
	}
	for key, value := range c.DefaultHeaders {
		if strings.TrimSpace(key) == "" {
			continue
		}
		httpReq.Header.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	httpReq.Header.Set(HeaderRequestID, requestID)

	startedAt := time.Now().UTC()
	httpRes, err := c.Client.Do(httpReq)
	if err != nil {
		c.observe(ctx, startedAt, 0, err)
		return core.PostResponse[R]{}, transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: execute http request",
			http.StatusBadGateway,
			map[string]any{"adapter": KindREST, "url": parsedURL.String(), "request_id": requestID},
		)
	}
	defer httpRes.Body.Close()

	body, err := c.readBody(httpRes)
	if err == nil {
		var decoded *R
		decoded, err = decodeBody[R](body, httpRes.StatusCode)
		if err == nil {
			c.observe(ctx, startedAt, httpRes.StatusCode, nil)
			c.log(ctx, parsedURL.String(), requestID, httpRes.StatusCode, startedAt)
			return core.PostResponse[R]{StatusCode: httpRes.StatusCode, Body: decoded}, nil
		}
	}
	c.observe(ctx, startedAt, httpRes.StatusCode, err)
	return core.PostResponse[R]{}, err
}

func (c *RESTPostClient[T, R]) readBody(httpRes *http.Response) ([]byte, error) {
	maxBodyBytes := c.MaxResponseBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultRESTResponseBodyLimit
	}
	body, err := io.ReadAll(io.LimitReader(httpRes.Body, maxBodyBytes+1))
	if err != nil {
		return nil, transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: read response body",
			http.StatusBadGateway,
			map[string]any{"adapter": KindREST, "status_code": httpRes.StatusCode},
		)
	}
	if int64(len(body)) > maxBodyBytes {
		return nil, transportError(
			fmt.Sprintf("transport: response body exceeds limit of %d bytes", maxBodyBytes),
			goerrors.CategoryExternal,
			http.StatusBadGateway,
			map[string]any{
				"adapter":          KindREST,
				"status_code":      httpRes.StatusCode,
				"response_limit_b": maxBodyBytes,
			},
		)
	}
	return body, nil
}

// decodeBody returns nil for an empty or JSON null body so callers can tell a
// missing payload apart from a zero value. Error responses often carry plain text, so
// an undecodable body only fails the call on a 2xx status.
func decodeBody[R any](body []byte, statusCode int) (*R, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var out R
	if err := json.Unmarshal(body, &out); err != nil {
		if statusCode < 200 || statusCode > 299 {
			return nil, nil
		}
		return nil, transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: decode response body",
			http.StatusBadGateway,
			map[string]any{"adapter": KindREST, "status_code": statusCode},
		)
	}
	return &out, nil
}

func (c *RESTPostClient[T, R]) observe(ctx context.Context, startedAt time.Time, statusCode int, err error) {
	if c.Metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	tags := map[string]string{
		"adapter":     KindREST,
		"status":      status,
		"status_code": strconv.Itoa(statusCode),
	}
	c.Metrics.IncCounter(ctx, "remoteauth.transport.total", 1, core.CloneTags(tags))
	c.Metrics.ObserveHistogram(ctx, "remoteauth.transport.duration_ms", float64(time.Since(startedAt).Milliseconds()), core.CloneTags(tags))
}

func (c *RESTPostClient[T, R]) log(ctx context.Context, target string, requestID string, statusCode int, startedAt time.Time) {
	if c.Logger == nil {
		return
	}
	c.Logger.WithContext(ctx).Debug("transport: post completed",
		"method", http.MethodPost,
		"url", target,
		"status_code", statusCode,
		"duration_ms", time.Since(startedAt).Milliseconds(),
		"request_id", requestID,
	)
}

var _ core.PostClient[core.Credentials, core.Account] = (*RESTPostClient[core.Credentials, core.Account])(nil)
