package transport

import (
	"net/http"
)

// Authenticator applies credentials to outgoing requests.
type Authenticator interface {
	Apply(req *http.Request, token string)
}

// NoAuth sends requests unauthenticated.
type NoAuth struct{}

// Apply implements Authenticator.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// BearerAuth sends "Authorization: Bearer <token>", the scheme GitHub
// expects for fine-grained tokens and app installation tokens.
type BearerAuth struct{}

// Apply implements Authenticator.
func (a *BearerAuth) Apply(req *http.Request, token string) {
	if token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

// TokenAuth sends "Authorization: token <token>", the classic personal
// access token scheme still accepted by GitHub Enterprise Server.
type TokenAuth struct{}

// Apply implements Authenticator.
func (a *TokenAuth) Apply(req *http.Request, token string) {
	if token == "" {
		return
	}
	req.Header.Set("Authorization", "token "+token)
}

// HeaderAuth sends the token verbatim in a custom header.
type HeaderAuth struct {
	Header string
}

// Apply implements Authenticator.
func (a *HeaderAuth) Apply(req *http.Request, token string) {
	if token == "" || a.Header == "" {
		return
	}
	req.Header.Set(a.Header, token)
}

// AuthFor returns the authenticator for a scheme name: "bearer" (the
// default), "token" or "none".
func AuthFor(scheme string) Authenticator {
	switch scheme {
	case "token":
		return &TokenAuth{}
	case "none":
		return &NoAuth{}
	default:
		return &BearerAuth{}
	}
}
