package devkit

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/goliatone/go-remoteauth/core"
)

func TestPostClientSpy_ScriptRestartsSequence(t *testing.T) {
	spy := NewPostClientSpy[core.Credentials, core.Account]()
	ctx := context.Background()

	if _, err := spy.Post(ctx, core.PostRequest[core.Credentials]{URL: "https://a.example.com"}); err != nil {
		t.Fatalf("default post: %v", err)
	}

	sentinel := errors.New("down")
	spy.Script(
		PostScript[core.Account]{Response: core.PostResponse[core.Account]{StatusCode: http.StatusUnauthorized}},
		PostScript[core.Account]{Err: sentinel},
	)

	res, err := spy.Post(ctx, core.PostRequest[core.Credentials]{})
	if err != nil || res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected first script after reset, got %d %v", res.StatusCode, err)
	}
	if _, err := spy.Post(ctx, core.PostRequest[core.Credentials]{}); err != sentinel {
		t.Fatalf("expected second script, got %v", err)
	}
	if _, err := spy.Post(ctx, core.PostRequest[core.Credentials]{}); err != sentinel {
		t.Fatalf("expected last script to repeat, got %v", err)
	}
	if spy.Calls() != 4 {
		t.Fatalf("expected recorded requests to survive Script, got %d", spy.Calls())
	}
}

func TestPostClientSpy_ResponseBodiesAreCopied(t *testing.T) {
	spy := NewPostClientSpy[core.Credentials, core.Account]()
	account := core.Account{AccessToken: "tok"}
	spy.Respond(http.StatusOK, &account)

	res, err := spy.Post(context.Background(), core.PostRequest[core.Credentials]{})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	res.Body.AccessToken = "mutated"

	again, _ := spy.Post(context.Background(), core.PostRequest[core.Credentials]{})
	if again.Body.AccessToken != "tok" {
		t.Fatalf("expected scripted body to stay intact, got %q", again.Body.AccessToken)
	}
}
