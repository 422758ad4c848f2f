package handler

import (
	"net/http"

	"bistro/internal/newsletter/service"
	httputil "bistro/pkg/http"
	"bistro/pkg/logger"
	"bistro/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type SubscribeResponse struct {
	OK bool `json:"ok"`
}

type NewsletterHandler struct {
	service service.NewsletterService
	log     *logger.Logger
}

func NewNewsletterHandler(service service.NewsletterService, log *logger.Logger) *NewsletterHandler {
	return &NewsletterHandler{
		service: service,
		log:     log,
	}
}

func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.SubscribeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Subscribe", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if _, err := h.service.Subscribe(r.Context(), &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Subscribe", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, SubscribeResponse{OK: true}); err != nil {
		h.log.Error("failed to write created response", "handler", "Subscribe", "operation", "WriteCreated", "error", err)
	}
}

func (h *NewsletterHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/newsletter", h.Subscribe)
}
