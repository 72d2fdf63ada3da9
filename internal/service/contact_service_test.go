package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kivrims/backend/internal/model"
)

type mockContactRepo struct {
	saveFunc func(ctx context.Context, msg *model.ContactMessage) error
}

func (m *mockContactRepo) Save(ctx context.Context, msg *model.ContactMessage) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, msg)
	}
	return nil
}

func TestContactService_Submit_StampsCreatedAt(t *testing.T) {
	var saved *model.ContactMessage
	repo := &mockContactRepo{
		saveFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			saved = msg
			return nil
		},
	}
	s := NewContactService(repo)

	before := time.Now().UTC()
	msg := &model.ContactMessage{
		Name:    "Alice",
		Email:   "alice@example.com",
		Subject: "Rims",
		Message: "Do you ship?",
	}
	require.NoError(t, s.Submit(context.Background(), msg))
	after := time.Now().UTC()

	require.NotNil(t, saved)
	require.False(t, saved.CreatedAt.Before(before))
	require.False(t, saved.CreatedAt.After(after))
	require.Equal(t, time.UTC, saved.CreatedAt.Location())
}

func TestContactService_Submit_PropagatesRepoError(t *testing.T) {
	want := errors.New("insert failed")
	repo := &mockContactRepo{
		saveFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			return want
		},
	}
	s := NewContactService(repo)

	err := s.Submit(context.Background(), &model.ContactMessage{
		Name: "a", Email: "b", Subject: "c", Message: "d",
	})
	require.ErrorIs(t, err, want)
}
