package ports

import (
	"context"

	"github.com/workbridge/freelance-api/internal/core/domain"
)

// PortfolioRepository defines persistence for executor portfolios.
type PortfolioRepository interface {
	Find(ctx context.Context, userID string) (*domain.Portfolio, error)
	AddItem(ctx context.Context, userID string, item domain.PortfolioItem) error
	UpdateItem(ctx context.Context, userID string, item domain.PortfolioItem) error
	DeleteItem(ctx context.Context, userID, itemID string) error
}

// PortfolioItemInput carries the data for a new or updated portfolio item.
type PortfolioItemInput struct {
	Title       string
	Description string
	ImageURL    string
	Category    string
}

// PortfolioService manages an executor's showcased works.
type PortfolioService interface {
	Get(ctx context.Context, userID string) (*domain.Portfolio, error)
	AddItem(ctx context.Context, userID string, role domain.Role, input PortfolioItemInput) (*domain.PortfolioItem, error)
	UpdateItem(ctx context.Context, userID, itemID string, input PortfolioItemInput) (*domain.PortfolioItem, error)
	DeleteItem(ctx context.Context, userID, itemID string) error
}
