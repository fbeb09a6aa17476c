package middleware

import (
	"io"
	"net/http"
)

// drained bodies up to this size keep the connection reusable; larger
// leftovers are not worth reading.
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest reads what the handler left of the request body
// (e.g. after rejecting a bad workout json) and closes it.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			_, _ = io.CopyN(io.Discard, r.Body, maxDrainBytes)
			_ = r.Body.Close()
		})
	}
}
