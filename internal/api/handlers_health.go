package api

import "net/http"

type HealthHandler struct {
	reg *Registry
}

func NewHealthHandler(reg *Registry) *HealthHandler {
	return &HealthHandler{reg: reg}
}

type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Sessions: h.reg.Len()})
}
