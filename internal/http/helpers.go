package http

import (
	"net"
	"net/http"
	"strings"

	"spendlog/internal/core"
)

// parseDateParam reads the "date" query or form value, defaulting to today.
func parseDateParam(r *http.Request) core.Day {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		raw = strings.TrimSpace(r.FormValue("date"))
	}
	if raw != "" {
		if day, err := core.ParseDay(raw); err == nil {
			return day
		}
	}
	return core.Today()
}

// sanitizeInput trims whitespace and strips control characters from form
// values before they reach the store.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// extractClientIP returns the originating client address, honoring
// X-Forwarded-For and X-Real-IP when set by a fronting proxy.
func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if net.ParseIP(xri) != nil {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
