package service

import (
	"context"
	"time"

	"github.com/kivrims/backend/internal/model"
	"github.com/kivrims/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{repo: repo}
}

// Submit stamps CreatedAt with the submission time and persists the message.
func (s *contactServiceImpl) Submit(ctx context.Context, msg *model.ContactMessage) error {
	msg.CreatedAt = time.Now().UTC()
	return s.repo.Save(ctx, msg)
}
