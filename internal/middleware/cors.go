package middleware

import (
	"net/http"
	"strings"
)

var corsAllowedHeaders = []string{
	"Content-Type",
	HeaderVKUserID,
	HeaderVKUserData,
	"MCP-Protocol-Version",
	"MCP-Session-Id",
}

// Cors allows any origin; the mini app is served from the host platform's domains.
// Preflight requests are answered here and never reach the router.
func Cors() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(corsAllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", "86400")
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
