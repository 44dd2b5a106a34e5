package repository

import (
	"net/http"
	"sync/atomic"
)

// RoundTripperFunc allows us to easily mock http.Client responses in tests.
type RoundTripperFunc func(*http.Request) *http.Response

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

// CountingTransport wraps a RoundTripper and records how many requests went
// out, so tests can assert that nothing touched the network.
type CountingTransport struct {
	Next  http.RoundTripper
	calls atomic.Int64
}

func (c *CountingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return c.Next.RoundTrip(req)
}

// Calls returns the number of requests seen so far.
func (c *CountingTransport) Calls() int {
	return int(c.calls.Load())
}
