package handlers

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status      string  `json:"status"`
	NextRefresh *string `json:"next_refresh"`
}

// Healthcheck reports liveness and the next scheduled price refresh.
func (h *Handler) Healthcheck(w http.ResponseWriter, r *http.Request) {
	res := healthResponse{Status: "alive"}
	if next, ok := h.Controller.NextPriceRefresh(); ok {
		formatted := next.UTC().Format(time.RFC3339)
		res.NextRefresh = &formatted
	}
	h.respond(w, r, res, http.StatusOK)
}
