package log

import (
	"net/http"
	"time"
)

// Transport propagates the caller's correlation ID on outgoing requests and
// logs each round trip at debug level.
type Transport struct {
	Base   http.RoundTripper
	Logger *Logger
}

func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	id := GetOrGenerateCorrelationID(r.Context())
	r = r.Clone(r.Context())
	r.Header.Set("X-Correlation-ID", id)

	start := time.Now()
	resp, err := base.RoundTrip(r)

	if t.Logger != nil {
		l := t.Logger.Logger.With(string(CorrelatedIDKey), id)
		if err != nil {
			l.Debug("Outgoing request failed", "method", r.Method, "url", r.URL.String(), "error", err)
		} else {
			l.Debug("Outgoing request", "method", r.Method, "url", r.URL.String(), "status", resp.StatusCode, "latency_ms", time.Since(start).Milliseconds())
		}
	}

	return resp, err
}

// NewHTTPClient returns a client whose transport is wrapped by Transport.
func NewHTTPClient(logger *Logger, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &Transport{Logger: logger},
	}
}
