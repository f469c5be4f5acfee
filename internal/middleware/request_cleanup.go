package middleware

import (
	"io"
	"net/http"
)

// MaxRequestBodyBytes fits the whole document in an admin replace.
const MaxRequestBodyBytes = 10 << 20

// LimitAndDrainRequest caps the request body at maxBytes and, once the
// handler returns, drains whatever it left unread so the connection can be
// reused.
func LimitAndDrainRequest(maxBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
			_, _ = io.Copy(io.Discard, r.Body)
			_ = r.Body.Close()
		})
	}
}
