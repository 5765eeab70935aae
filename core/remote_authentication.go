package core

import (
	"context"
	"net/http"
)

// RemoteAuthentication authenticates credentials against a remote endpoint
// through an injected PostClient. It holds no mutable state and is safe for
// concurrent use.
type RemoteAuthentication struct {
	url    string
	client PostClient[Credentials, Account]
}

func NewRemoteAuthentication(url string, client PostClient[Credentials, Account]) *RemoteAuthentication {
	return &RemoteAuthentication{url: url, client: client}
}

func (r *RemoteAuthentication) URL() string {
	if r == nil {
		return ""
	}
	return r.url
}

// Authenticate posts the credentials once and maps the response status:
// 200 yields the account, 401 yields an invalid credentials error and any
// other status yields an unexpected error. Transport errors are returned as is.
func (r *RemoteAuthentication) Authenticate(ctx context.Context, credentials Credentials) (Account, error) {
	if r == nil || r.client == nil {
		return Account{}, dependencyError("core: remote authentication requires a post client")
	}

	res, err := r.client.Post(ctx, PostRequest[Credentials]{
		URL:  r.url,
		Body: credentials,
	})
	if err != nil {
		return Account{}, err
	}

	switch res.StatusCode {
	case http.StatusOK:
		if res.Body == nil {
			return Account{}, NewUnexpectedError()
		}
		return *res.Body, nil
	case http.StatusUnauthorized:
		return Account{}, NewInvalidCredentialsError()
	default:
		return Account{}, NewUnexpectedError()
	}
}
