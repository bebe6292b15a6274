package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"tracker/src/api/controllers"
	"tracker/src/models"
	"tracker/src/services"
	"tracker/src/utils"
)

const requestTimeout = 10 * time.Second

// ImportTimeout bounds an upload, whose rows are stored one at a time.
const ImportTimeout = 5 * time.Minute

type Handler struct {
	Controller controllers.IController
	Logger     *logrus.Logger
}

func NewHandler(controller controllers.IController, logger *logrus.Logger) *Handler {
	return &Handler{Controller: controller, Logger: logger}
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return h.requestContextWithTimeout(r, requestTimeout)
}

func (h *Handler) requestContextWithTimeout(r *http.Request, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	return utils.WithLogger(ctx, h.Logger), cancel
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	case errors.As(err, &httpErr):
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	case errors.Is(err, models.ErrValidation):
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusBadRequest)
	case errors.Is(err, services.ErrExtraction):
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusUnprocessableEntity)
	case err != nil:
		h.Logger.WithError(err).Error("unhandled request error")
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusInternalServerError)
	default:
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}

func (h *Handler) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return utils.BadRequest(fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, utils.BadRequest(fmt.Sprintf("%s must be an integer", key))
	}
	return v, nil
}

func queryDate(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(utils.ShortDashDateLayout, raw)
	if err != nil {
		return nil, utils.BadRequest(fmt.Sprintf("%s must be YYYY-MM-DD", key))
	}
	return &d, nil
}
