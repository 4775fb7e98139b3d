// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

type Handlers struct {
	Reviews    *app.ReviewService
	Store      domain.ReviewStore
	Properties *app.PropertyService
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", h.healthz)
	s.mux.Get("/reviews", h.getReviews)
	s.mux.Get("/reviews/approved", h.getApproved)
	s.mux.Post("/reviews/approved", h.moderate)
	s.mux.Get("/properties/{id}", h.getProperty)
	s.mux.Put("/properties/{id}", h.updateProperty)
	s.mux.Get("/properties/{id}/reviews", h.propertyReviews)
}

// GET /healthz is liveness only; no dependency checks.
func (h *Handlers) healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// GET /reviews — fetch from upstream (fixture fallback), load the store,
// return the winning batch.
func (h *Handlers) getReviews(w http.ResponseWriter, r *http.Request) {
	res := h.Reviews.FetchReviews(r.Context())
	observability.ObserveFetch(res.Source)
	writeJSON(w, http.StatusOK, res)
}

// GET /reviews/approved
func (h *Handlers) getApproved(w http.ResponseWriter, r *http.Request) {
	approved, err := h.Store.ApprovedReviews(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("fetch approved reviews failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch approved reviews")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"approvedReviews": approved,
		"count":           len(approved),
	})
}

type moderationRequest struct {
	Action    string  `json:"action"`
	ReviewIDs []int64 `json:"reviewIds"`
}

var actionMessages = map[string]string{
	"approve":     "Reviews approved successfully",
	"reject":      "Reviews rejected successfully",
	"approve_all": "All reviews approved successfully",
	"reject_all":  "All reviews rejected successfully",
}

// POST /reviews/approved — the single mutating moderation endpoint.
// Validation happens here, once; the store is total over what passes.
func (h *Handlers) moderate(w http.ResponseWriter, r *http.Request) {
	var req moderationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.Action == "" {
		writeError(w, http.StatusBadRequest, "Missing action")
		return
	}
	if (req.Action == "approve" || req.Action == "reject") && len(req.ReviewIDs) == 0 {
		writeError(w, http.StatusBadRequest, "Missing reviewIds for approve/reject actions")
		return
	}

	ctx := r.Context()
	var err error
	switch req.Action {
	case "approve":
		err = h.Store.Approve(ctx, req.ReviewIDs)
	case "reject":
		err = h.Store.Reject(ctx, req.ReviewIDs)
	case "approve_all":
		err = h.Store.ApproveAll(ctx)
	case "reject_all":
		err = h.Store.RejectAll(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Invalid action")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("action", req.Action).Msg("moderation action failed")
		writeError(w, http.StatusInternalServerError, "Failed to update review approval")
		return
	}
	observability.ObserveModeration(req.Action)

	count, err := h.Store.ApprovedCount(ctx)
	if err != nil {
		log.Error().Err(err).Msg("approved count failed")
		writeError(w, http.StatusInternalServerError, "Failed to update review approval")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"message":       actionMessages[req.Action],
		"approvedCount": count,
	})
}

// GET /properties/{id}
func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.Properties.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Property not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("fetch property failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch property")
		return
	}

	etag, body := calcETagAndBody(map[string]any{"property": p})
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getProperty body")
	}
}

// PUT /properties/{id} — partial update; the id field in the body is
// ignored and overwritten.
func (h *Handlers) updateProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var upd domain.PropertyUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	p, err := h.Properties.Update(r.Context(), id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Property not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("update property failed")
		writeError(w, http.StatusInternalServerError, "Failed to update property")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"property": p,
		"message":  "Property updated successfully",
	})
}

// GET /properties/{id}/reviews — approved reviews for one property, in
// batch order.
func (h *Handlers) propertyReviews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Properties.Get(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Property not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("fetch property failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch property")
		return
	}
	reviews, err := h.Reviews.ApprovedForProperty(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("fetch property reviews failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch approved reviews")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reviews": reviews,
		"count":   len(reviews),
	})
}
