package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/workbridge/freelance-api/internal/core/domain"
)

const collectionPortfolio = "portfolio"

// PortfolioRepository stores one portfolio document per user, items embedded.
type PortfolioRepository struct {
	col *mongo.Collection
}

func NewPortfolioRepository(db *mongo.Database) *PortfolioRepository {
	return &PortfolioRepository{col: db.Collection(collectionPortfolio)}
}

type portfolioDoc struct {
	UserID string             `bson:"user_id"`
	Items  []portfolioItemDoc `bson:"items"`
}

type portfolioItemDoc struct {
	ID          string `bson:"id"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	ImageURL    string `bson:"image_url,omitempty"`
	Category    string `bson:"category,omitempty"`
	CreatedAt   int64  `bson:"created_at"`
}

// Find returns the user's portfolio, empty when none exists yet.
func (r *PortfolioRepository) Find(ctx context.Context, userID string) (*domain.Portfolio, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc portfolioDoc
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &domain.Portfolio{UserID: userID, Items: []domain.PortfolioItem{}}, nil
		}
		return nil, fmt.Errorf("find portfolio: %w", err)
	}

	portfolio := &domain.Portfolio{UserID: doc.UserID, Items: make([]domain.PortfolioItem, 0, len(doc.Items))}
	for _, it := range doc.Items {
		portfolio.Items = append(portfolio.Items, domain.PortfolioItem{
			ID:          it.ID,
			Title:       it.Title,
			Description: it.Description,
			ImageURL:    it.ImageURL,
			Category:    it.Category,
			CreatedAt:   unixToTime(it.CreatedAt),
		})
	}
	return portfolio, nil
}

// AddItem pushes an item onto the user's portfolio, creating the document on
// first use.
func (r *PortfolioRepository) AddItem(ctx context.Context, userID string, item domain.PortfolioItem) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$push": bson.M{"items": toItemDoc(item)}}
	_, err := r.col.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("add portfolio item: %w", err)
	}
	return nil
}

// UpdateItem replaces the matching embedded item in place.
func (r *PortfolioRepository) UpdateItem(ctx context.Context, userID string, item domain.PortfolioItem) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID, "items.id": item.ID}
	update := bson.M{"$set": bson.M{"items.$": toItemDoc(item)}}
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update portfolio item: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPortfolioItemNotFound
	}
	return nil
}

// DeleteItem pulls the matching embedded item.
func (r *PortfolioRepository) DeleteItem(ctx context.Context, userID, itemID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID}
	update := bson.M{"$pull": bson.M{"items": bson.M{"id": itemID}}}
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("delete portfolio item: %w", err)
	}
	if res.ModifiedCount == 0 {
		return domain.ErrPortfolioItemNotFound
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

func toItemDoc(item domain.PortfolioItem) portfolioItemDoc {
	return portfolioItemDoc{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		Category:    item.Category,
		CreatedAt:   item.CreatedAt.Unix(),
	}
}
