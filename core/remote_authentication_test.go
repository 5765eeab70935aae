package core_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-remoteauth/core"
	"github.com/goliatone/go-remoteauth/devkit"
)

type sut struct {
	auth *core.RemoteAuthentication
	spy  *devkit.PostClientSpy[core.Credentials, core.Account]
}

func makeSUT(url string) sut {
	if url == "" {
		url = devkit.MockURL()
	}
	spy := devkit.NewPostClientSpy[core.Credentials, core.Account]()
	return sut{auth: core.NewRemoteAuthentication(url, spy), spy: spy}
}

func TestRemoteAuthentication_PostsToConfiguredURL(t *testing.T) {
	url := devkit.MockURL()
	s := makeSUT(url)
	s.spy.Respond(http.StatusOK, &core.Account{AccessToken: "tok"})

	if _, err := s.auth.Authenticate(context.Background(), devkit.MockCredentials()); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	req, ok := s.spy.LastRequest()
	if !ok {
		t.Fatalf("expected post client invocation")
	}
	if req.URL != url {
		t.Fatalf("expected url %q, got %q", url, req.URL)
	}
	if s.auth.URL() != url {
		t.Fatalf("expected adapter url %q, got %q", url, s.auth.URL())
	}
}

func TestRemoteAuthentication_PostsCredentialsUnchanged(t *testing.T) {
	s := makeSUT("")
	s.spy.Respond(http.StatusOK, &core.Account{AccessToken: "tok"})
	credentials := devkit.MockCredentials()

	if _, err := s.auth.Authenticate(context.Background(), credentials); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if calls := s.spy.Calls(); calls != 1 {
		t.Fatalf("expected exactly one post, got %d", calls)
	}
	req, _ := s.spy.LastRequest()
	if req.Body != credentials {
		t.Fatalf("expected body %#v, got %#v", credentials, req.Body)
	}
}

func TestRemoteAuthentication_ReturnsAccountOnOK(t *testing.T) {
	s := makeSUT("")
	account := devkit.MockAccount()
	s.spy.Respond(http.StatusOK, &account)

	got, err := s.auth.Authenticate(context.Background(), devkit.MockCredentials())
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got != account {
		t.Fatalf("expected account %#v, got %#v", account, got)
	}
}

func TestRemoteAuthentication_InvalidCredentialsOnUnauthorized(t *testing.T) {
	s := makeSUT("")
	s.spy.Respond(http.StatusUnauthorized, nil)

	_, err := s.auth.Authenticate(context.Background(), devkit.MockCredentials())
	if err == nil {
		t.Fatalf("expected invalid credentials error")
	}
	if !core.IsInvalidCredentials(err) {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if core.IsUnexpected(err) {
		t.Fatalf("expected only the invalid credentials kind, got %v", err)
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryAuth {
		t.Fatalf("expected auth category, got %q", rich.Category)
	}
	if rich.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d code, got %d", http.StatusUnauthorized, rich.Code)
	}
	if rich.Message != core.InvalidCredentialsMessage {
		t.Fatalf("expected message %q, got %q", core.InvalidCredentialsMessage, rich.Message)
	}
}

func TestRemoteAuthentication_UnexpectedErrorOnOtherStatuses(t *testing.T) {
	for _, status := range []int{
		http.StatusBadRequest,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusInternalServerError,
		http.StatusCreated,
	} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			s := makeSUT("")
			account := devkit.MockAccount()
			s.spy.Respond(status, &account)

			_, err := s.auth.Authenticate(context.Background(), devkit.MockCredentials())
			if err == nil {
				t.Fatalf("expected unexpected error for status %d", status)
			}
			if !core.IsUnexpected(err) {
				t.Fatalf("expected unexpected error for status %d, got %v", status, err)
			}
			if core.IsInvalidCredentials(err) {
				t.Fatalf("status %d must not map to invalid credentials", status)
			}
		})
	}
}

func TestRemoteAuthentication_UnexpectedErrorOnOKWithoutBody(t *testing.T) {
	s := makeSUT("")
	s.spy.Respond(http.StatusOK, nil)

	_, err := s.auth.Authenticate(context.Background(), devkit.MockCredentials())
	if !core.IsUnexpected(err) {
		t.Fatalf("expected unexpected error for empty success body, got %v", err)
	}
}

func TestRemoteAuthentication_PropagatesTransportFailure(t *testing.T) {
	s := makeSUT("")
	sentinel := errors.New("connection refused")
	s.spy.Fail(sentinel)

	_, err := s.auth.Authenticate(context.Background(), devkit.MockCredentials())
	if err != sentinel {
		t.Fatalf("expected transport error to propagate unchanged, got %v", err)
	}
	if core.IsUnexpected(err) || core.IsInvalidCredentials(err) {
		t.Fatalf("transport failure must not be reclassified: %v", err)
	}
}

func TestRemoteAuthentication_RepeatedCallsAreIndependent(t *testing.T) {
	s := makeSUT("")
	account := devkit.MockAccount()
	s.spy.Respond(http.StatusOK, &account)
	credentials := devkit.MockCredentials()

	first, err := s.auth.Authenticate(context.Background(), credentials)
	if err != nil {
		t.Fatalf("first authenticate: %v", err)
	}
	second, err := s.auth.Authenticate(context.Background(), credentials)
	if err != nil {
		t.Fatalf("second authenticate: %v", err)
	}
	if first != account || second != account {
		t.Fatalf("expected %#v twice, got %#v and %#v", account, first, second)
	}
	if calls := s.spy.Calls(); calls != 2 {
		t.Fatalf("expected one post per call, got %d", calls)
	}
}

func TestRemoteAuthentication_ConcurrentCalls(t *testing.T) {
	s := makeSUT("")
	account := devkit.MockAccount()
	s.spy.Respond(http.StatusOK, &account)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.auth.Authenticate(context.Background(), devkit.MockCredentials())
			if err == nil && got != account {
				err = errors.New("unexpected account " + got.AccessToken)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent authenticate: %v", err)
		}
	}
	if calls := s.spy.Calls(); calls != workers {
		t.Fatalf("expected %d posts, got %d", workers, calls)
	}
}

func TestRemoteAuthentication_EndToEndScenario(t *testing.T) {
	s := makeSUT("https://api.example.com/login")
	s.spy.Respond(http.StatusOK, &core.Account{AccessToken: "tok-abc"})

	got, err := s.auth.Authenticate(context.Background(), core.Credentials{
		Email:    "user@example.com",
		Password: "pw123",
	})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.AccessToken != "tok-abc" {
		t.Fatalf("expected tok-abc, got %q", got.AccessToken)
	}
	req, _ := s.spy.LastRequest()
	if req.URL != "https://api.example.com/login" {
		t.Fatalf("unexpected url %q", req.URL)
	}
	if req.Body.Email != "user@example.com" || req.Body.Password != "pw123" {
		t.Fatalf("unexpected body %#v", req.Body)
	}
}

func TestRemoteAuthentication_NilClientReturnsRichError(t *testing.T) {
	auth := core.NewRemoteAuthentication(devkit.MockURL(), nil)
	_, err := auth.Authenticate(context.Background(), devkit.MockCredentials())
	if err == nil {
		t.Fatalf("expected dependency error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.TextCode != core.AuthErrorInternal {
		t.Fatalf("expected %q text code, got %q", core.AuthErrorInternal, rich.TextCode)
	}
}
