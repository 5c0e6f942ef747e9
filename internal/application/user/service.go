package user

import (
	"context"

	"github.com/go-notes-api/internal/domain"
)

// Repository is the directory contract the profile service needs.
type Repository interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// Service exposes the authenticated user's own identity record.
type Service interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}
