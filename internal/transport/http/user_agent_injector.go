package http

import (
	"net/http"

	"github.com/oshokin/spotisaver/internal/utils"
	"github.com/oshokin/spotisaver/internal/version"
)

// UserAgentInjector is an http.RoundTripper that sets a User-Agent header on requests that lack one.
type UserAgentInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// userAgentProvider provides the User-Agent string to inject.
	userAgentProvider utils.UserAgentProvider
}

// userAgentHeader is the HTTP header name for User-Agent.
const userAgentHeader = "User-Agent"

// DefaultUserAgentProvider identifies this build, e.g. "spotisaver/0.1.0 (+https://...)".
func DefaultUserAgentProvider() utils.UserAgentProvider {
	return utils.NewProductUserAgentProvider(productName, version.Short(), productComment)
}

// NewUserAgentInjector wraps next so that every outgoing request carries a User-Agent.
func NewUserAgentInjector(next http.RoundTripper, userAgentProvider utils.UserAgentProvider) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &UserAgentInjector{
		next:              next,
		userAgentProvider: userAgentProvider,
	}
}

// RoundTrip implements http.RoundTripper.
// The caller's request is cloned before the header is set, as RoundTrippers must not mutate it.
func (t *UserAgentInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if req.Header.Get(userAgentHeader) != "" {
		return t.next.RoundTrip(req)
	}

	userAgent := t.userAgentProvider.GetUserAgent()
	if userAgent == "" {
		return t.next.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set(userAgentHeader, userAgent)

	return t.next.RoundTrip(clone)
}
