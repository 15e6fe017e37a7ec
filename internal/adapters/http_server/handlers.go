package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"ratepilot/internal/app"
	"ratepilot/internal/domain"
)

type Handlers struct {
	Q *app.SuggestService
	A *app.ApplyService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/rooms", h.listRooms)
	s.mux.Post("/v1/suggestions", h.suggest)
	s.mux.Post("/v1/apply", h.apply)
	s.mux.Get("/v1/audit", h.listAudit)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
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

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Q.Rooms(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "failed to load rooms")
		return
	}

	etag, body := calcETagAndBody(rooms)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write listRooms body")
	}
}

func (h *Handlers) suggest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Intent string `json:"intent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "expected JSON object with intent")
		return
	}
	intent, err := domain.ParseIntent(req.Intent)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Intent", "intent must be increase, decrease or review")
		return
	}

	out, err := h.Q.SuggestAll(r.Context(), intent)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "failed to compute suggestions")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) apply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Operator  string            `json:"operator"`
		Prompt    string            `json:"prompt"`
		Intent    string            `json:"intent"`
		Approvals []domain.Approval `json:"approvals"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "expected JSON object with approvals")
		return
	}
	intent, err := domain.ParseIntent(req.Intent)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Intent", "intent must be increase, decrease or review")
		return
	}

	res, err := h.A.Apply(r.Context(), app.ApplyRequest{
		Operator:  req.Operator,
		Prompt:    req.Prompt,
		Intent:    intent,
		Approvals: req.Approvals,
	})
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeProblem(w, http.StatusBadRequest, "Invalid Approvals", err.Error())
		return
	case errors.Is(err, domain.ErrVersionConflict):
		writeProblem(w, http.StatusConflict, "Conflict", "room collection changed underneath this apply; re-suggest and retry")
		return
	case err != nil:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "apply failed")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		app.ApplyResult
		AuditLogged bool `json:"auditLogged"`
	}{ApplyResult: res, AuditLogged: res.AuditErr == nil})
}

func (h *Handlers) listAudit(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	out, err := h.Q.RecentAudit(r.Context(), limit)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "failed to load audit trail")
		return
	}
	if out == nil {
		out = []domain.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, out)
}
