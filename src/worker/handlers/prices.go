package handlers

import (
	"context"
	"net/http"
	"time"
)

func (h *Handler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	result, err := h.Controller.RefreshPrices(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, result, http.StatusOK)
}
