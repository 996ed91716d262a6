package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pawsprefs/paws/internal/model"
	"github.com/pawsprefs/paws/internal/session"
)

// SessionHandler handles swipe session HTTP requests.
type SessionHandler struct {
	reg *Registry
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(reg *Registry) *SessionHandler {
	return &SessionHandler{reg: reg}
}

type sessionResponse struct {
	ID string `json:"id"`
	session.State
}

// staleResponse is returned when a concurrent restart superseded the start.
type staleResponse struct {
	sessionResponse
	Message string `json:"message"`
}

type decisionRequest struct {
	Decision string `json:"decision"`
}

// Create handles POST /sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, e := h.reg.create()
	state, err := e.start(r.Context())
	resp := sessionResponse{ID: id, State: state}
	if err != nil {
		h.startFailed(w, resp, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Get handles GET /sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, e, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, State: e.snapshot()})
}

// Decide handles POST /sessions/{id}/decisions
func (h *SessionHandler) Decide(w http.ResponseWriter, r *http.Request) {
	id, e, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req decisionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	d, err := model.ParseDecision(req.Decision)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := e.apply(d)
	if errors.Is(err, session.ErrNotActive) {
		writeError(w, http.StatusConflict, "session is "+state.Phase.String()+", no card to decide")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, State: state})
}

// Summary handles GET /sessions/{id}/summary
func (h *SessionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	_, e, ok := h.lookup(w, r)
	if !ok {
		return
	}
	sum, err := e.summary()
	if errors.Is(err, session.ErrNotReady) {
		writeError(w, http.StatusConflict, "summary not ready")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// Restart handles POST /sessions/{id}/restart
func (h *SessionHandler) Restart(w http.ResponseWriter, r *http.Request) {
	id, e, ok := h.lookup(w, r)
	if !ok {
		return
	}
	state, err := e.start(r.Context())
	resp := sessionResponse{ID: id, State: state}
	if err != nil {
		h.startFailed(w, resp, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.reg.Delete(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (string, *entry, bool) {
	id := chi.URLParam(r, "id")
	e, ok := h.reg.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return "", nil, false
	}
	return id, e, true
}

// startFailed reports a failed or superseded generation. The session stays
// registered so the client can retry with restart.
func (h *SessionHandler) startFailed(w http.ResponseWriter, resp sessionResponse, err error) {
	if errors.Is(err, session.ErrStaleGeneration) {
		// The session is still registered; the id lets the client follow
		// the restart that won.
		writeJSON(w, http.StatusConflict, staleResponse{
			sessionResponse: resp,
			Message:         "superseded by a newer restart",
		})
		return
	}
	h.reg.logger.Warn("session start failed", "session", resp.ID, "error", err)
	writeJSON(w, http.StatusBadGateway, resp)
}
