package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kivrims/backend/internal/service"
	"github.com/kivrims/backend/pkg/metrics"
	"github.com/kivrims/backend/pkg/mpesa"
)

// PaymentHandler handles STK push initiation and the gateway callback.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a PaymentHandler with the given service.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// stkPushRequest is the expected JSON body for POST /api/stk-push.
type stkPushRequest struct {
	Amount json.Number `json:"amount"`
	Phone  string      `json:"phone"`
}

// stkPushResponse wraps the gateway payload on success.
type stkPushResponse struct {
	Message string                 `json:"message"`
	Data    *mpesa.STKPushResponse `json:"data"`
}

// STKPush handles POST /api/stk-push. Both fields are required and are
// checked before any outbound call is made. A zero amount counts as missing.
func (h *PaymentHandler) STKPush(w http.ResponseWriter, r *http.Request) {
	var req stkPushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.STKPushTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Amount and phone number are required."})
		return
	}

	if req.Amount.String() == "" || req.Amount.String() == "0" || req.Phone == "" {
		metrics.STKPushTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Amount and phone number are required."})
		return
	}

	resp, err := h.paymentService.InitiateSTKPush(r.Context(), req.Amount, req.Phone)
	if err != nil {
		slog.Error("stk push failed", "error", err)
		metrics.STKPushTotal.WithLabelValues(metrics.OutcomeError).Inc()
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Server error during M-Pesa STK Push.",
			"error":   err.Error(),
		})
		return
	}

	if !resp.Accepted() {
		slog.Error("stk push rejected by gateway",
			"responseCode", resp.ResponseCode,
			"responseDescription", resp.ResponseDescription,
		)
		metrics.STKPushTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"message": "STK Push initiation failed.",
			"error":   resp,
		})
		return
	}

	metrics.STKPushTotal.WithLabelValues(metrics.OutcomeAccepted).Inc()
	writeJSON(w, http.StatusOK, stkPushResponse{
		Message: "STK Push initiated successfully!",
		Data:    resp,
	})
}

// Callback handles POST /api/mpesa-callback. The payload is gateway-initiated
// and is logged and acknowledged unconditionally; its shape is never
// validated and no correlation with the originating push is attempted.
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		slog.Warn("mpesa callback with unreadable body", "error", err)
	} else {
		slog.Info("mpesa callback received", "payload", payload)
	}

	metrics.CallbacksTotal.Inc()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Callback received"})
}
