// Package progress provides the event sink that concurrent download workers report into
// and a single consumer drains on a fixed interval.
package progress
