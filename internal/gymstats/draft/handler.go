package draft

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/gymlog/internal/gymstats/document"
	"github.com/2beens/gymlog/internal/gymstats/reply"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=draft_test

type draftService interface {
	Load(ctx context.Context) (*document.LiveDraft, error)
	Save(ctx context.Context, draft document.LiveDraft) (*document.LiveDraft, error)
	Clear(ctx context.Context) error
}

type LoadResponse struct {
	OK    bool                `json:"ok"`
	Draft *document.LiveDraft `json:"draft"`
}

type Handler struct {
	service        draftService
	metricsManager *metrics.Manager
}

func NewHandler(service draftService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.draft.load")
	defer span.End()

	draft, err := handler.service.Load(ctx)
	if err != nil {
		log.Errorf("load gym draft: %s", err)
		reply.Error(w, err)
		return
	}

	reply.JSON(w, LoadResponse{OK: true, Draft: draft})
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.draft.save")
	defer span.End()

	var draft document.LiveDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Errorf("save gym draft, unmarshal json: %s", err)
		reply.Invalid(w, "Invalid JSON body")
		return
	}

	if _, err := handler.service.Save(ctx, draft); err != nil {
		log.Warnf("save gym draft: %s", err)
		reply.Error(w, err)
		return
	}

	handler.metricsManager.CounterDraftWrites.WithLabelValues("save").Inc()
	reply.OK(w)
}

func (handler *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.draft.clear")
	defer span.End()

	if err := handler.service.Clear(ctx); err != nil {
		log.Errorf("clear gym draft: %s", err)
		reply.Error(w, err)
		return
	}

	handler.metricsManager.CounterDraftWrites.WithLabelValues("clear").Inc()
	reply.OK(w)
}
