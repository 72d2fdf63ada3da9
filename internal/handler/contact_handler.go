package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kivrims/backend/internal/model"
	"github.com/kivrims/backend/internal/service"
	"github.com/kivrims/backend/pkg/metrics"
)

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// contactRequest is the expected JSON body for POST /api/contact.
type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// contactResponse echoes the stored record back to the caller.
type contactResponse struct {
	Message string                `json:"message"`
	Data    *model.ContactMessage `json:"data"`
}

// Submit handles POST /api/contact. All four fields are required.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.ContactMessagesTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "All fields are required."})
		return
	}

	if req.Name == "" || req.Email == "" || req.Subject == "" || req.Message == "" {
		metrics.ContactMessagesTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "All fields are required."})
		return
	}

	msg := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := h.contactService.Submit(r.Context(), msg); err != nil {
		slog.Error("contact message store failed", "error", err)
		metrics.ContactMessagesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Server error.",
			"error":   err.Error(),
		})
		return
	}

	metrics.ContactMessagesTotal.WithLabelValues(metrics.OutcomeAccepted).Inc()
	writeJSON(w, http.StatusCreated, contactResponse{
		Message: "Contact message sent successfully!",
		Data:    msg,
	})
}
