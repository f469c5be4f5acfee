package endofday

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/gymlog/internal/gymstats/reply"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=endofday_test

type submitter interface {
	Submit(ctx context.Context, payload Payload) (*Result, error)
}

type SubmitResponse struct {
	OK     bool    `json:"ok"`
	Result *Result `json:"result"`
}

type Handler struct {
	service        submitter
	metricsManager *metrics.Manager
}

func NewHandler(service submitter, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.endofday.submit")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var payload Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Errorf("end of day, unmarshal json payload: %s", err)
		handler.metricsManager.CounterSubmissions.WithLabelValues("invalid").Inc()
		reply.Invalid(w, "Invalid request body")
		return
	}

	result, err := handler.service.Submit(ctx, payload)
	if err != nil {
		log.Warnf("end of day [%s] rejected: %s", payload.Date, err)
		handler.metricsManager.CounterSubmissions.WithLabelValues(reply.Kind(err)).Inc()
		reply.Error(w, err)
		return
	}

	handler.metricsManager.CounterSubmissions.WithLabelValues("ok").Inc()
	for _, change := range result.OverloadChanges {
		handler.metricsManager.CounterOverloadUpdates.WithLabelValues(string(change.Direction)).Inc()
	}

	reply.JSON(w, SubmitResponse{OK: true, Result: result})
}
