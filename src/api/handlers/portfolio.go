package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"tracker/src/schemas"
	"tracker/src/services"
	"tracker/src/utils"
)

// maxUploadSize bounds an import file held in memory.
const maxUploadSize = 10 << 20

func (h *Handler) CreateAssetTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	var req schemas.AssetTransactionRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	created, err := h.Controller.CreateAssetTransaction(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, created, http.StatusCreated)
}

func (h *Handler) GetAssetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	txs, err := h.Controller.ListAssetTransactions(ctx, r.URL.Query().Get("asset_type"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, txs, http.StatusOK)
}

func (h *Handler) GetHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	holdings, err := h.Controller.ListHoldings(ctx, r.URL.Query().Get("asset_type"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, holdings, http.StatusOK)
}

func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	top, err := queryInt(r, "top")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	res, err := h.Controller.GetPortfolio(ctx, r.URL.Query().Get("asset_type"), top)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, res, http.StatusOK)
}

func (h *Handler) ExportPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	format, err := services.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	assetType := r.URL.Query().Get("asset_type")

	h.writeFile(w, "holdings", format, func(buf io.Writer) error {
		return h.Controller.ExportPortfolio(ctx, buf, format, assetType)
	})
}

func (h *Handler) ImportAssetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContextWithTimeout(r, ImportTimeout)
	defer cancel()

	dryRun := false
	if raw := strings.TrimSpace(r.URL.Query().Get("dry_run")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.HandleErrors(w, utils.BadRequest("dry_run must be true or false"))
			return
		}
		dryRun = v
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.HandleErrors(w, utils.BadRequest("expected a multipart upload with a file field"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("missing file field"))
		return
	}
	defer file.Close()

	res, err := h.Controller.ImportAssetTransactions(ctx, header.Filename, file, dryRun)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, res, http.StatusOK)
}
