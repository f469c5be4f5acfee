package wizard

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/gymlog/internal/docstore"
	"github.com/2beens/gymlog/internal/gymstats/document"
	"github.com/2beens/gymlog/internal/gymstats/reply"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=wizard_test

type documentLoader interface {
	Get(ctx context.Context) (*document.Document, docstore.Revision, error)
}

type Request struct {
	State    State  `json:"state"`
	Activity string `json:"activity,omitempty"`
}

type Response struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	State State  `json:"state"`
}

// Handler exposes the wizard transitions so thin clients do not need to
// reimplement them.
type Handler struct {
	loader documentLoader
}

func NewHandler(loader documentLoader) *Handler {
	return &Handler{
		loader: loader,
	}
}

func (handler *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.wizard.toggle")
	defer span.End()

	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	activity, ok := ParseActivity(req.Activity)
	if !ok {
		reply.Invalid(w, "Unknown activity")
		return
	}

	reply.JSON(w, Response{OK: true, State: Toggle(req.State, activity)})
}

func (handler *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.wizard.validate")
	defer span.End()

	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	wz, ok := handler.wizard(ctx, w)
	if !ok {
		return
	}

	resp := Response{OK: true, State: req.State}
	if err := wz.ValidateStep(req.State); err != nil {
		resp.OK = false
		resp.Error = reply.Message(err)
	}
	reply.JSON(w, resp)
}

func (handler *Handler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.wizard.advance")
	defer span.End()

	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	wz, ok := handler.wizard(ctx, w)
	if !ok {
		return
	}

	next, err := wz.Advance(req.State)
	if err != nil {
		writeBlocked(w, err, req.State)
		return
	}
	reply.JSON(w, Response{OK: true, State: next})
}

func (handler *Handler) HandleRetreat(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.wizard.retreat")
	defer span.End()

	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	reply.JSON(w, Response{OK: true, State: Retreat(req.State)})
}

// HandleApplyDraft pre-fills the gym entry of the posted state from the saved draft.
func (handler *Handler) HandleApplyDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.wizard.draft")
	defer span.End()

	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	doc, _, err := handler.loader.Get(ctx)
	if err != nil {
		log.Errorf("wizard, load document: %s", err)
		reply.Error(w, err)
		return
	}

	reply.JSON(w, Response{OK: true, State: ApplyDraft(req.State, doc.GymLiveDraft)})
}

func (handler *Handler) wizard(ctx context.Context, w http.ResponseWriter) (*Wizard, bool) {
	doc, _, err := handler.loader.Get(ctx)
	if err != nil {
		log.Errorf("wizard, load document: %s", err)
		reply.Error(w, err)
		return nil, false
	}
	return New(doc), true
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (Request, bool) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("wizard, unmarshal json request: %s", err)
		reply.Invalid(w, "Invalid request body")
		return Request{}, false
	}
	if req.State.GymInputs == nil {
		req.State.GymInputs = map[string]ExerciseInput{}
	}
	if req.State.Activities == nil {
		req.State.Activities = []Activity{}
	}
	return req, true
}

// writeBlocked answers a blocked transition with the unchanged state.
func writeBlocked(w http.ResponseWriter, err error, state State) {
	status := reply.Status(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("wizard advance: %s", err)
	}
	pkg.WriteJSON(w, Response{OK: false, Error: reply.Message(err), State: state}, status)
}
