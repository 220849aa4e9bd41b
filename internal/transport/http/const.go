package http

import "time"

const (
	// DefaultTimeout bounds a single catalog or cover-art request.
	DefaultTimeout = 30 * time.Second

	// productName and productComment make up the User-Agent together with the build version.
	productName    = "spotisaver"
	productComment = "+https://github.com/oshokin/spotisaver"

	// defaultMaxLogLength caps a dumped request or response in debug logs.
	defaultMaxLogLength = 64 * 1024

	// redactedValue replaces credentials in dumped headers.
	redactedValue = "[redacted]"
)
