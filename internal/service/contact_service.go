package service

import (
	"context"

	"github.com/kivrims/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit stores a new contact message. msg.ID and msg.CreatedAt are
	// populated by the implementation.
	Submit(ctx context.Context, msg *model.ContactMessage) error
}
