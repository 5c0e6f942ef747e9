package note

import (
	"context"
	"fmt"
	"time"

	"github.com/go-notes-api/internal/domain"
	"github.com/go-notes-api/internal/pkg/id"
)

// Repository is the minimal persistence contract for notes.
type Repository interface {
	Put(ctx context.Context, n *domain.Note) error
	Get(ctx context.Context, noteID string) (*domain.Note, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Note, error)
	Delete(ctx context.Context, noteID string) error
}

// Service is ownership-scoped note CRUD: every operation acts only on
// the authenticated user's own notes.
type Service interface {
	List(ctx context.Context, userID string) ([]domain.Note, error)
	Create(ctx context.Context, userID string, req domain.CreateNoteRequest) (*domain.Note, error)
	Delete(ctx context.Context, userID, noteID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID string) ([]domain.Note, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateNoteRequest) (*domain.Note, error) {
	now := time.Now().UTC()
	n := &domain.Note{
		NoteID:      id.New(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) Delete(ctx context.Context, userID, noteID string) error {
	n, err := s.repo.Get(ctx, noteID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return fmt.Errorf("note belongs to another user: %w", domain.ErrForbidden)
	}
	return s.repo.Delete(ctx, noteID)
}
