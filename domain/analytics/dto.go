package analytics

import (
	"strings"

	"github.com/viewmark/viewmark/config/router"
)

// TrackPageViewRequest is the body of POST /api/track-pageview. Every field
// is optional; missing values are stored as empty strings.
type TrackPageViewRequest struct {
	PagePath  string `json:"pagePath"`
	UserAgent string `json:"userAgent"`
	Referrer  string `json:"referrer"`
	SessionID string `json:"sessionId"`
}

type TrackInteractionRequest struct {
	InteractionType string  `json:"interactionType"`
	PagePath        string  `json:"pagePath"`
	UserAgent       string  `json:"userAgent"`
	Referrer        string  `json:"referrer"`
	SessionID       string  `json:"sessionId"`
	Email           *string `json:"email"`
}

type TrackResponse struct {
	Success bool `json:"success"`
}

// PageView is a page view as the service receives it, IP already resolved.
type PageView struct {
	PagePath  string
	UserAgent string
	Referrer  string
	SessionID string
	IPAddress string
}

type Interaction struct {
	Type  string
	View  PageView
	Email string
}

const unknownIP = "unknown"

// ClientIP returns the first x-forwarded-for entry, then the client-ip
// header, then "unknown".
func ClientIP(ctx *router.RequestContext) string {
	if forwarded := ctx.GetHeader("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if ip := strings.TrimSpace(ctx.GetHeader("Client-Ip")); ip != "" {
		return ip
	}

	return unknownIP
}
