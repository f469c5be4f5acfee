// Package admin exposes the whole document: a read for backups and the
// admin replace.
package admin

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/2beens/gymlog/internal/docstore"
	"github.com/2beens/gymlog/internal/gymstats/document"
	"github.com/2beens/gymlog/internal/gymstats/reply"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"

	log "github.com/sirupsen/logrus"
)

const (
	RevisionHeader    = "X-Doc-Revision"
	AdminSecretHeader = "X-Admin-Secret"

	maxDocumentBytes = 10 << 20
)

type documentStore interface {
	Get(ctx context.Context) (*document.Document, docstore.Revision, error)
	Set(ctx context.Context, doc *document.Document, expected docstore.Revision) (docstore.Revision, error)
}

type ReplaceResponse struct {
	OK       bool  `json:"ok"`
	Revision int64 `json:"revision"`
}

type Handler struct {
	store           documentStore
	adminSecretHash string
}

// NewHandler creates the handler. An empty adminSecretHash disables replace.
func NewHandler(store documentStore, adminSecretHash string) *Handler {
	return &Handler{
		store:           store,
		adminSecretHash: adminSecretHash,
	}
}

// HandleGet returns the normalized document with the passcode left out. The
// revision is sent in a header so a later replace can be conditional.
func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.get")
	defer span.End()

	doc, rev, err := handler.store.Get(ctx)
	if err != nil {
		log.Errorf("get document: %s", err)
		reply.Error(w, err)
		return
	}

	if doc.Passcode != nil {
		redacted := *doc.Passcode
		redacted.Passcode = ""
		doc.Passcode = &redacted
	}

	w.Header().Set(RevisionHeader, strconv.FormatInt(int64(rev), 10))
	pkg.WriteJSON(w, doc, http.StatusOK)
}

// HandleReplace overwrites the whole document. When the request carries a
// revision header the write only succeeds if the stored revision matches.
func (handler *Handler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.replace")
	defer span.End()

	if handler.adminSecretHash == "" {
		http.Error(w, "admin replace disabled", http.StatusForbidden)
		return
	}
	if !pkg.CheckPasswordHash(r.Header.Get(AdminSecretHeader), handler.adminSecretHash) {
		log.Warnf("admin replace with wrong secret from %s", r.RemoteAddr)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	expected := docstore.AnyRevision
	if revStr := r.Header.Get(RevisionHeader); revStr != "" {
		rev, err := strconv.ParseInt(revStr, 10, 64)
		if err != nil || rev < 0 {
			reply.Invalid(w, "Invalid revision header")
			return
		}
		expected = docstore.Revision(rev)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentBytes))
	if err != nil {
		log.Errorf("admin replace, read body: %s", err)
		reply.Invalid(w, "Invalid JSON body")
		return
	}
	next, err := document.Decode(body)
	if err != nil {
		log.Errorf("admin replace, decode body: %s", err)
		reply.Invalid(w, "Invalid JSON body")
		return
	}
	if err := next.Validate(); err != nil {
		log.Warnf("admin replace, invalid document: %s", err)
		reply.Error(w, err)
		return
	}

	current, _, err := handler.store.Get(ctx)
	if err != nil {
		log.Errorf("admin replace, load document: %s", err)
		reply.Error(w, err)
		return
	}
	// the passcode is never sent out, so a replace without one keeps it
	if next.Passcode == nil || next.Passcode.Passcode == "" {
		next.Passcode = current.Passcode
	}

	newRev, err := handler.store.Set(ctx, next, expected)
	if err != nil {
		log.Errorf("admin replace, save document: %s", err)
		reply.Error(w, err)
		return
	}

	log.Warnf("document replaced by admin, new revision %d", newRev)
	reply.JSON(w, ReplaceResponse{OK: true, Revision: int64(newRev)})
}
