package service

import (
	"context"
	"encoding/json"

	"github.com/kivrims/backend/pkg/mpesa"
)

// paymentServiceImpl is the production implementation of PaymentService.
type paymentServiceImpl struct {
	client mpesa.Client
}

// NewPaymentService creates a PaymentService backed by the given Daraja client.
func NewPaymentService(client mpesa.Client) PaymentService {
	return &paymentServiceImpl{client: client}
}

// InitiateSTKPush submits one token request and one push request per call.
func (s *paymentServiceImpl) InitiateSTKPush(ctx context.Context, amount json.Number, phone string) (*mpesa.STKPushResponse, error) {
	return s.client.STKPush(ctx, mpesa.STKPushParams{
		Amount:      amount,
		PhoneNumber: mpesa.FormatPhoneNumber(phone),
	})
}
