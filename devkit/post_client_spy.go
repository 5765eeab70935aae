package devkit

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/goliatone/go-remoteauth/core"
)

// PostScript is one scripted outcome for a PostClientSpy call.
type PostScript[R any] struct {
	Response core.PostResponse[R]
	Err      error
}

// PostClientSpy records every request and answers with scripted outcomes. Once
// the scripts run out the last one repeats; with no scripts it answers 200
// with an empty body. Script restarts the sequence; recorded requests are kept.
type PostClientSpy[T any, R any] struct {
	mu       sync.Mutex
	scripts  []PostScript[R]
	cursor   int
	requests []core.PostRequest[T]
}

func NewPostClientSpy[T any, R any](scripts ...PostScript[R]) *PostClientSpy[T, R] {
	return &PostClientSpy[T, R]{
		scripts: append([]PostScript[R](nil), scripts...),
	}
}

// Respond replaces the scripted outcomes with a single response.
func (s *PostClientSpy[T, R]) Respond(statusCode int, body *R) {
	s.Script(PostScript[R]{Response: core.PostResponse[R]{StatusCode: statusCode, Body: body}})
}

// Fail replaces the scripted outcomes with a single transport failure.
func (s *PostClientSpy[T, R]) Fail(err error) {
	s.Script(PostScript[R]{Err: err})
}

func (s *PostClientSpy[T, R]) Script(scripts ...PostScript[R]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts = append([]PostScript[R](nil), scripts...)
	s.cursor = 0
}

func (s *PostClientSpy[T, R]) Post(_ context.Context, req core.PostRequest[T]) (core.PostResponse[R], error) {
	if s == nil {
		return core.PostResponse[R]{}, fmt.Errorf("devkit: post client spy is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)
	index := s.cursor
	s.cursor++
	if index < len(s.scripts) {
		script := s.scripts[index]
		return cloneResponse(script.Response), script.Err
	}
	if len(s.scripts) > 0 {
		last := s.scripts[len(s.scripts)-1]
		return cloneResponse(last.Response), last.Err
	}
	return core.PostResponse[R]{StatusCode: http.StatusOK}, nil
}

func (s *PostClientSpy[T, R]) Requests() []core.PostRequest[T] {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.PostRequest[T](nil), s.requests...)
}

// LastRequest returns the most recent request and whether one was recorded.
func (s *PostClientSpy[T, R]) LastRequest() (core.PostRequest[T], bool) {
	requests := s.Requests()
	if len(requests) == 0 {
		return core.PostRequest[T]{}, false
	}
	return requests[len(requests)-1], true
}

func (s *PostClientSpy[T, R]) Calls() int {
	return len(s.Requests())
}

func cloneResponse[R any](in core.PostResponse[R]) core.PostResponse[R] {
	out := core.PostResponse[R]{StatusCode: in.StatusCode}
	if in.Body != nil {
		body := *in.Body
		out.Body = &body
	}
	return out
}

var _ core.PostClient[core.Credentials, core.Account] = (*PostClientSpy[core.Credentials, core.Account])(nil)
