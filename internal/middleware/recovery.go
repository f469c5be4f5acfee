package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/pkg"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

type panicResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// PanicRecovery turns a panicking handler into a JSON 500 and reports the
// panic to sentry when a client is configured.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				log.Errorf("http: panic serving %s %s: %v\n%s", req.Method, req.URL.Path, r, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				if hub := sentry.CurrentHub(); hub.Client() != nil {
					hub.Recover(fmt.Errorf("%s %s: %v", req.Method, req.URL.Path, r))
					hub.Flush(2 * time.Second)
				}

				pkg.WriteJSON(w, panicResponse{OK: false, Error: "Something went wrong"}, http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, req)
		})
	}
}
