package service

import (
	"context"
	"encoding/json"

	"github.com/kivrims/backend/pkg/mpesa"
)

// PaymentService defines the business logic for initiating M-Pesa payments.
type PaymentService interface {
	// InitiateSTKPush normalizes the phone number and submits an STK push
	// to the gateway. The outcome is returned to the caller and discarded;
	// nothing is persisted and no record links the push to its later callback.
	InitiateSTKPush(ctx context.Context, amount json.Number, phone string) (*mpesa.STKPushResponse, error)
}
