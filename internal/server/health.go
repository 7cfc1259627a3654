package server

import "net/http"

// HealthHandler answers the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/api", Func: h.Status},
	}
}

func (h *HealthHandler) Status(w http.ResponseWriter, _ *http.Request) error {
	return respondMsg(w, http.StatusOK, "ok")
}
