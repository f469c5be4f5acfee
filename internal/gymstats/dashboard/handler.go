// Package dashboard serves the read side: stat cards, week charts, recent
// entries and single gym sessions.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/gymlog/internal/docstore"
	"github.com/2beens/gymlog/internal/gymstats/document"
	"github.com/2beens/gymlog/internal/gymstats/reply"
	"github.com/2beens/gymlog/internal/gymstats/stats"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"

	"github.com/coocood/freecache"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=dashboard_test

const (
	// entries are keyed by document revision, so the expiry only bounds memory use
	cacheExpireSeconds = 10 * 60
	maxRecentLimit     = 100
)

type documentLoader interface {
	Get(ctx context.Context) (*document.Document, docstore.Revision, error)
}

type Response struct {
	OK       bool            `json:"ok"`
	Revision int64           `json:"revision"`
	Stats    stats.Dashboard `json:"stats"`
	Week     stats.WeekView  `json:"week"`
}

type RecentResponse struct {
	OK     bool         `json:"ok"`
	Recent stats.Recent `json:"recent"`
}

type SessionResponse struct {
	OK      bool                `json:"ok"`
	Session document.GymSession `json:"session"`
}

type Handler struct {
	loader documentLoader
	cache  *freecache.Cache
	// injectable for tests
	NowFunc func() time.Time
}

func NewHandler(loader documentLoader, cacheSizeBytes int) *Handler {
	return &Handler{
		loader:  loader,
		cache:   freecache.NewCache(cacheSizeBytes),
		NowFunc: time.Now,
	}
}

// HandleDashboard serves the stat cards for the reference week and the charts
// for the week selected by week_offset (0 or negative).
func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.get")
	defer span.End()

	ref, ok := handler.referenceDate(w, r)
	if !ok {
		return
	}

	offset := 0
	if offsetStr := r.URL.Query().Get("week_offset"); offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset > 0 {
			reply.Invalid(w, "week_offset must be 0 or a negative number")
			return
		}
	}

	doc, rev, err := handler.loader.Get(ctx)
	if err != nil {
		log.Errorf("dashboard, load document: %s", err)
		reply.Error(w, err)
		return
	}

	cacheKey := []byte(fmt.Sprintf("dashboard::%d::%s::%d", rev, ref.Format(document.DateLayout), offset))
	if cached, err := handler.cache.Get(cacheKey); err == nil {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	resp := Response{
		OK:       true,
		Revision: int64(rev),
		Stats:    stats.LoadDashboardStats(doc, ref),
		Week:     stats.Week(doc, ref, offset),
	}
	handler.writeCached(w, cacheKey, resp)
}

func (handler *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.recent")
	defer span.End()

	ref, ok := handler.referenceDate(w, r)
	if !ok {
		return
	}

	limit := stats.DefaultRecentLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > maxRecentLimit {
			reply.Invalid(w, fmt.Sprintf("limit must be between 1 and %d", maxRecentLimit))
			return
		}
	}

	doc, _, err := handler.loader.Get(ctx)
	if err != nil {
		log.Errorf("recent entries, load document: %s", err)
		reply.Error(w, err)
		return
	}

	reply.JSON(w, RecentResponse{OK: true, Recent: stats.RecentEntries(doc, ref, limit)})
}

func (handler *Handler) HandleGymSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.gymSession")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		reply.Invalid(w, "Missing session id")
		return
	}

	doc, _, err := handler.loader.Get(ctx)
	if err != nil {
		log.Errorf("gym session %s, load document: %s", id, err)
		reply.Error(w, err)
		return
	}

	session, found := doc.GymSessionByID(id)
	if !found {
		pkg.WriteJSON(w, reply.Envelope{OK: false, Error: "Gym session not found"}, http.StatusNotFound)
		return
	}

	reply.JSON(w, SessionResponse{OK: true, Session: session})
}

func (handler *Handler) referenceDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		return stats.Day(handler.NowFunc()), true
	}
	ref, err := time.Parse(document.DateLayout, dateStr)
	if err != nil {
		reply.Invalid(w, "date must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return ref, true
}

func (handler *Handler) writeCached(w http.ResponseWriter, cacheKey []byte, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("dashboard, marshal response: %s", err)
		http.Error(w, "failed to marshal dashboard", http.StatusInternalServerError)
		return
	}

	if err := handler.cache.Set(cacheKey, data, cacheExpireSeconds); err != nil {
		log.Errorf("dashboard, set cache [%s]: %s", cacheKey, err)
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, data)
}
