// Package http provides http.RoundTripper decorators used by the catalog client:
// User-Agent injection and debug-level request/response dumps with credentials redacted.
package http
