// Package reply writes the {ok, error} envelopes shared by the gym log API.
package reply

import (
	"errors"
	"net/http"

	"github.com/2beens/gymlog/internal/docstore"
	"github.com/2beens/gymlog/internal/gymstats/document"
	"github.com/2beens/gymlog/pkg"

	log "github.com/sirupsen/logrus"
)

const (
	msgStale       = "Data was changed in the meantime, reload and try again"
	msgUnavailable = "Storage is unavailable, try again later"
	msgInternal    = "Something went wrong"
)

type Envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Status maps an operation error to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, document.ErrConflict), errors.Is(err, docstore.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, document.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, docstore.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Kind is a short label of the error, used for metrics.
func Kind(err error) string {
	switch Status(err) {
	case http.StatusConflict:
		return "conflict"
	case http.StatusBadRequest:
		return "invalid"
	case http.StatusServiceUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Message returns the text shown to the user for err.
func Message(err error) string {
	switch Status(err) {
	case http.StatusServiceUnavailable:
		return msgUnavailable
	case http.StatusConflict:
		if errors.Is(err, docstore.ErrVersionConflict) {
			return msgStale
		}
	}
	return document.UserMessage(err, msgInternal)
}

func Error(w http.ResponseWriter, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("request failed: %s", err)
	}
	pkg.WriteJSON(w, Envelope{OK: false, Error: Message(err)}, status)
}

func Invalid(w http.ResponseWriter, message string) {
	pkg.WriteJSON(w, Envelope{OK: false, Error: message}, http.StatusBadRequest)
}

func OK(w http.ResponseWriter) {
	pkg.WriteJSON(w, Envelope{OK: true}, http.StatusOK)
}

// JSON writes a successful response carrying more than the bare envelope.
func JSON(w http.ResponseWriter, v any) {
	pkg.WriteJSON(w, v, http.StatusOK)
}
