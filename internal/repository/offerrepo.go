package repository

import (
	"context"

	"github.com/and161185/six-cities/internal/model"
	"github.com/gofrs/uuid/v5"
)

// OfferRepository provides read access to offers.
type OfferRepository interface {
	// List returns all offers ordered by id.
	List(ctx context.Context) (model.Offers, error)
	// Get returns a single offer.
	Get(ctx context.Context, id int) (*model.Offer, error)
	// ListByCity returns the offers of one city ordered by id.
	ListByCity(ctx context.Context, city string) (model.Offers, error)
}

// CommentRepository stores offer reviews.
type CommentRepository interface {
	// ListByOffer returns the comments of an offer, oldest first.
	ListByOffer(ctx context.Context, offerID int) (model.Comments, error)
	// Create stores a comment from userID and returns it with id and date set.
	Create(ctx context.Context, offerID int, userID uuid.UUID, p model.CommentPost) (model.Comment, error)
}
