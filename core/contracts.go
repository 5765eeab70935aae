package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

// Credentials is the identifier and secret pair submitted for authentication.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Account is the payload returned by the remote endpoint on success.
type Account struct {
	AccessToken string `json:"accessToken"`
}

type PostRequest[T any] struct {
	URL  string
	Body T
}

// PostResponse carries the status code and the decoded body. Body is nil when
// the remote endpoint returned no payload.
type PostResponse[R any] struct {
	StatusCode int
	Body       *R
}

// PostClient submits a single POST and reports the raw outcome. A non-2xx
// status is still a successful call; only failures to obtain a response are
// returned as errors.
type PostClient[T any, R any] interface {
	Post(ctx context.Context, req PostRequest[T]) (PostResponse[R], error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, credentials Credentials) (Account, error)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
