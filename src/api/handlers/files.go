package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"tracker/src/services"
)

// writeFile renders into memory first so a failure can still produce a JSON
// error instead of a truncated attachment.
func (h *Handler) writeFile(w http.ResponseWriter, name, format string, render func(buf io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		h.HandleErrors(w, err)
		return
	}

	w.Header().Set("Content-Type", services.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", name, format))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.WithError(err).Warn("failed to write export")
	}
}
