package domain

import "time"

// PortfolioItem is a single showcased work in an executor's portfolio.
type PortfolioItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Portfolio is the collection of works an executor presents to customers.
type Portfolio struct {
	UserID string          `json:"user_id"`
	Items  []PortfolioItem `json:"items"`
}
