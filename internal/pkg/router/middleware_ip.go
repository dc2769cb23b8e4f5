package router

import (
	"net"
	"net/http"
	"strings"
)

// middlewareIP rewrites RemoteAddr with the client IP advertised by trusted
// proxy headers, when that value parses as an IP.
func middlewareIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip := clientIP(r); ip != "" {
			r.RemoteAddr = ip
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	candidate := r.Header.Get("True-Client-IP")
	if candidate == "" {
		candidate = r.Header.Get("X-Real-IP")
	}
	if candidate == "" {
		candidate, _, _ = strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	}

	if net.ParseIP(candidate) != nil {
		return candidate
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && net.ParseIP(host) != nil {
		return host
	}
	return ""
}
