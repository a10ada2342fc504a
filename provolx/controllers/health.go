package controllers

import (
	"net/http"

	httputils "provolx/provolx/utils/http"
)

const (
	ServiceName    = "Provolx AI Assistant API - Powered by Gemini 2.0 Flash"
	ServiceVersion = "2.0.0"
)

type HealthController struct {
	model string
}

func NewHealthController(model string) *HealthController {
	return &HealthController{model: model}
}

// Root describes the service.
func (h *HealthController) Root(w http.ResponseWriter, r *http.Request) {
	httputils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": ServiceName,
		"status":  "active",
		"version": ServiceVersion,
		"model":   h.model,
	})
}

func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputils.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"model":  h.model,
	})
}
