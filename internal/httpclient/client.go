// Package httpclient builds API clients that carry the auth token.
//
// The injection point is an explicit RoundTripper registered once at
// client construction. Nothing here mutates global state: callers that
// want bearer injection opt in per client.
package httpclient

import (
	"net/http"
	"strings"
)

// BearerTransport adds "Authorization: Bearer <token>" to API requests.
type BearerTransport struct {
	// Token yields the current credential. Returning "" disables
	// injection for that request.
	Token func() string

	// Base performs the actual round trip. nil means
	// http.DefaultTransport.
	Base http.RoundTripper

	// PathPrefix limits injection to matching request paths. Empty
	// means "/api/".
	PathPrefix string
}

func (t *BearerTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *BearerTransport) prefix() string {
	if t.PathPrefix != "" {
		return t.PathPrefix
	}
	return "/api/"
}

// RoundTrip injects the header when the path matches and no explicit
// Authorization header is already set. The request is cloned first;
// RoundTrippers must not mutate their input.
func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !strings.HasPrefix(req.URL.Path, t.prefix()) {
		return t.base().RoundTrip(req)
	}
	if req.Header.Get("Authorization") != "" {
		return t.base().RoundTrip(req)
	}

	tok := ""
	if t.Token != nil {
		tok = t.Token()
	}
	if tok == "" {
		return t.base().RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+tok)
	return t.base().RoundTrip(clone)
}

// New returns an http.Client whose API requests carry the token.
func New(token func() string) *http.Client {
	return &http.Client{
		Transport: &BearerTransport{Token: token},
	}
}
