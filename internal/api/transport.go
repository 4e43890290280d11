package api

import "net/http"

// TokenHeader carries the access token on every request.
const TokenHeader = "X-Token"

// TokenSource yields the current access token, "" when logged out.
type TokenSource interface {
	Token() string
}

// tokenRoundTripper sets TokenHeader on outgoing requests.
type tokenRoundTripper struct {
	next http.RoundTripper
	src  TokenSource
}

func newTokenRoundTripper(next http.RoundTripper, src TokenSource) *tokenRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &tokenRoundTripper{next: next, src: src}
}

func (rt *tokenRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	if rt.src == nil {
		return rt.next.RoundTrip(r)
	}
	tok := rt.src.Token()
	if tok == "" {
		return rt.next.RoundTrip(r)
	}
	// RoundTrippers must not modify the caller's request.
	r = r.Clone(r.Context())
	r.Header.Set(TokenHeader, tok)
	return rt.next.RoundTrip(r)
}
