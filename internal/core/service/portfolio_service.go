package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/workbridge/freelance-api/internal/core/domain"
	"github.com/workbridge/freelance-api/internal/core/ports"
)

// PortfolioService manages an executor's showcased works.
type PortfolioService struct {
	repo   ports.PortfolioRepository
	logger zerolog.Logger
}

func NewPortfolioService(repo ports.PortfolioRepository, logger zerolog.Logger) *PortfolioService {
	return &PortfolioService{repo: repo, logger: logger}
}

// Get returns the user's portfolio; an empty one when nothing was added yet.
func (s *PortfolioService) Get(ctx context.Context, userID string) (*domain.Portfolio, error) {
	return s.repo.Find(ctx, userID)
}

// AddItem appends a new work to the caller's portfolio. Executors only.
func (s *PortfolioService) AddItem(ctx context.Context, userID string, role domain.Role, input ports.PortfolioItemInput) (*domain.PortfolioItem, error) {
	if role != domain.RoleExecutor {
		return nil, fmt.Errorf("%w: only executors maintain portfolios", domain.ErrForbidden)
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	item := domain.PortfolioItem{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.AddItem(ctx, userID, item); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Str("item_id", item.ID).Msg("portfolio item added")
	return &item, nil
}

// UpdateItem replaces an existing item's fields. Ownership is implicit: the
// repository scopes items by the caller's portfolio.
func (s *PortfolioService) UpdateItem(ctx context.Context, userID, itemID string, input ports.PortfolioItemInput) (*domain.PortfolioItem, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	portfolio, err := s.repo.Find(ctx, userID)
	if err != nil {
		return nil, err
	}

	var existing *domain.PortfolioItem
	for i := range portfolio.Items {
		if portfolio.Items[i].ID == itemID {
			existing = &portfolio.Items[i]
			break
		}
	}
	if existing == nil {
		return nil, domain.ErrPortfolioItemNotFound
	}

	item := domain.PortfolioItem{
		ID:          itemID,
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		CreatedAt:   existing.CreatedAt,
	}
	if err := s.repo.UpdateItem(ctx, userID, item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item from the caller's portfolio.
func (s *PortfolioService) DeleteItem(ctx context.Context, userID, itemID string) error {
	return s.repo.DeleteItem(ctx, userID, itemID)
}
