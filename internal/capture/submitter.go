package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/viewmark/viewmark/internal/log"
	"github.com/viewmark/viewmark/pkg/clock"
	"github.com/viewmark/viewmark/pkg/constants"
	"github.com/viewmark/viewmark/pkg/utils"
)

// SubmitPath is where the waitlist endpoint is mounted.
const SubmitPath = "/api/submit-email"

// HTTPSubmitter posts {"email": ...} to a submit-email endpoint.
type HTTPSubmitter struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTPSubmitter(baseURL string, logger *log.Logger, timeout time.Duration) *HTTPSubmitter {
	if timeout <= 0 {
		timeout = constants.DefaultSubmitTimeout
	}
	return &HTTPSubmitter{
		Endpoint: strings.TrimRight(baseURL, "/") + SubmitPath,
		Client:   log.NewHTTPClient(logger, timeout),
	}
}

type submitBody struct {
	Email string `json:"email"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *HTTPSubmitter) Submit(ctx context.Context, email string) error {
	payload, err := json.Marshal(submitBody{Email: email})
	if err != nil {
		return &SubmissionError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return &SubmissionError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return &SubmissionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return ErrEmailAlreadyExists
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var body errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)

	return &SubmissionError{
		StatusCode: resp.StatusCode,
		Message:    body.Error,
		Err:        fmt.Errorf("submit-email returned %d", resp.StatusCode),
	}
}

// LocalSubmitter stands in for the endpoint during local development. It
// accepts every address after Delay.
type LocalSubmitter struct {
	Delay time.Duration
	Clock clock.Clock
}

func (s LocalSubmitter) Submit(ctx context.Context, _ string) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}

	c := s.Clock
	if c == nil {
		c = clock.Real()
	}

	done := make(chan struct{})
	t := c.AfterFunc(s.Delay, func() { close(done) })

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		t.Stop()
		return ctx.Err()
	}
}

// SelectSubmitter returns local when host names this machine and remote
// otherwise.
func SelectSubmitter(host string, remote, local Submitter) Submitter {
	if isLocalHost(host) {
		return local
	}
	return remote
}

func isLocalHost(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// OptionsFromEnv reads WAITLIST_* overrides on top of DefaultOptions.
func OptionsFromEnv() Options {
	opts := DefaultOptions()
	opts.MinLoading = utils.GetEnvDurationOrDefault("WAITLIST_MIN_LOADING", opts.MinLoading)
	opts.SuccessDisplay = utils.GetEnvDurationOrDefault("WAITLIST_SUCCESS_DISPLAY", opts.SuccessDisplay)
	opts.ResetFade = utils.GetEnvDurationOrDefault("WAITLIST_RESET_FADE", opts.ResetFade)
	opts.SubmitTimeout = utils.GetEnvDurationOrDefault("WAITLIST_SUBMIT_TIMEOUT", opts.SubmitTimeout)
	return opts
}
