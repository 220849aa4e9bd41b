package http

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/oshokin/spotisaver/internal/logger"
	"github.com/oshokin/spotisaver/internal/utils"
)

// LogTransport is an http.RoundTripper that dumps requests and responses at debug level.
// Authorization headers never reach the log.
type LogTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// maxLogLength is the maximum length of logged request/response data.
	maxLogLength uint64
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

// sensitiveHeaders are replaced before a request is dumped.
//
//nolint:gochecknoglobals // Immutable list used as a constant.
var sensitiveHeaders = []string{"Authorization", "Cookie", "Proxy-Authorization"}

// NewLogTransport creates a LogTransport around next.
// A zero maxLogLength selects the package default.
func NewLogTransport(next http.RoundTripper, maxLogLength uint64) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	if maxLogLength == 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	ctx := req.Context()
	requestDump := t.dumpRequest(req)
	startTime := time.Now()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(startTime)

	if err != nil {
		logger.Debugf(ctx, "Request failed: %s %s | Error: %v", req.Method, req.URL.Redacted(), err)

		return nil, err
	}

	logger.Debugf(ctx, "%s %s [%d] %s\nRequest: %s\nResponse: %s",
		req.Method, req.URL.Path, resp.StatusCode, duration, requestDump, t.dumpResponse(resp))

	return resp, nil
}

func (t *LogTransport) dumpRequest(req *http.Request) string {
	// Headers only: token requests carry the client secret in the body.
	redacted := req.Clone(req.Context())
	for _, header := range sensitiveHeaders {
		if redacted.Header.Get(header) != "" {
			redacted.Header.Set(header, redactedValue)
		}
	}

	dump, err := httputil.DumpRequestOut(redacted, false)
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) dumpResponse(resp *http.Response) string {
	dump, err := httputil.DumpResponse(resp, utils.IsTextContentType(resp.Header.Get("Content-Type")))
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) truncate(data []byte) string {
	if uint64(len(data)) > t.maxLogLength {
		return string(data[:t.maxLogLength]) + "... [truncated]"
	}

	return string(data)
}
