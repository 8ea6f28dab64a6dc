package middleware

import (
	"net/http"
	"strings"
)

// CORSMiddleware answers preflight requests and stamps the CORS headers. The
// allowlist is a comma-separated origin list; "*" allows everything.
type CORSMiddleware struct {
	allowAll bool
	origins  map[string]bool
}

func NewCORSMiddleware(allowedOrigins string) *CORSMiddleware {
	m := &CORSMiddleware{origins: map[string]bool{}}
	for _, origin := range strings.Split(allowedOrigins, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			m.allowAll = true
		} else if origin != "" {
			m.origins[origin] = true
		}
	}
	return m
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if origin := m.allowedOrigin(req.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, req)
	})
}

func (m *CORSMiddleware) allowedOrigin(requestOrigin string) string {
	if m.allowAll {
		return "*"
	}
	if m.origins[requestOrigin] {
		return requestOrigin
	}
	return ""
}
