package httpclient

import (
	"net/http"
	"time"
)

// New creates an HTTP client with a pooled transport and the given overall timeout.
// A zero timeout means no client-side deadline; callers then rely on the request context.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
