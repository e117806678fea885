package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/viewmark/viewmark/internal/log"
)

// TrackPath is where the page-view endpoint is mounted.
const TrackPath = "/api/track-pageview"

// Event is the page-view payload.
type Event struct {
	PagePath  string `json:"pagePath"`
	UserAgent string `json:"userAgent"`
	Referrer  string `json:"referrer"`
	SessionID string `json:"sessionId"`
}

type Sender interface {
	Send(ctx context.Context, event Event) error
}

type HTTPSender struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTPSender(baseURL string, logger *log.Logger, timeout time.Duration) *HTTPSender {
	return &HTTPSender{
		Endpoint: strings.TrimRight(baseURL, "/") + TrackPath,
		Client:   log.NewHTTPClient(logger, timeout),
	}
}

func (s *HTTPSender) Send(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("track-pageview returned %d", resp.StatusCode)
	}
	return nil
}
