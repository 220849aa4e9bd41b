package utils

//go:generate $MOCKGEN -source=user_agent_provider.go -destination=mocks/user_agent_provider_mock.go

import "strings"

// UserAgentProvider supplies the User-Agent header for outgoing requests.
type UserAgentProvider interface {
	// GetUserAgent returns a User-Agent string.
	GetUserAgent() string
}

// ProductUserAgentProvider reports a fixed "product/version (comment)" value.
type ProductUserAgentProvider struct {
	userAgent string
}

// NewProductUserAgentProvider builds the User-Agent from its parts.
// Empty version and comment parts are left out.
func NewProductUserAgentProvider(product, version, comment string) UserAgentProvider {
	var sb strings.Builder

	sb.WriteString(product)

	if version != "" {
		sb.WriteString("/")
		sb.WriteString(version)
	}

	if comment != "" {
		sb.WriteString(" (")
		sb.WriteString(comment)
		sb.WriteString(")")
	}

	return &ProductUserAgentProvider{userAgent: sb.String()}
}

// GetUserAgent returns the User-Agent string.
func (p *ProductUserAgentProvider) GetUserAgent() string {
	return p.userAgent
}
