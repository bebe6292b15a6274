package handlers

import (
	"io"
	"net/http"

	"tracker/src/models"
	"tracker/src/schemas"
	"tracker/src/services"
)

func (h *Handler) ProcessText(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	var req schemas.ProcessTextRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	result, err := h.Controller.ProcessText(ctx, &req)
	if err != nil {
		h.Logger.WithError(err).Warn("could not process text")
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, result, http.StatusOK)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	var req schemas.TransactionRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	created, err := h.Controller.CreateTransaction(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, created, http.StatusCreated)
}

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	filter, err := transactionFilter(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	txs, err := h.Controller.ListTransactions(ctx, filter)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, txs, http.StatusOK)
}

func (h *Handler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	format, err := services.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	filter, err := transactionFilter(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.writeFile(w, "transactions", format, func(buf io.Writer) error {
		return h.Controller.ExportTransactions(ctx, buf, format, filter)
	})
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	days, err := queryInt(r, "days")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	summary, err := h.Controller.GetDashboard(ctx, days)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, summary, http.StatusOK)
}

func transactionFilter(r *http.Request) (models.TransactionFilter, error) {
	q := r.URL.Query()
	filter := models.TransactionFilter{
		Type:     models.TransactionType(q.Get("type")),
		Category: q.Get("category"),
	}

	var err error
	if filter.DateFrom, err = queryDate(r, "date_from"); err != nil {
		return filter, err
	}
	if filter.DateTo, err = queryDate(r, "date_to"); err != nil {
		return filter, err
	}
	return filter, nil
}
