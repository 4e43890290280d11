package postgres

import (
	"context"
	"errors"

	"github.com/and161185/six-cities/internal/errs"
	"github.com/and161185/six-cities/internal/model"
	"github.com/jackc/pgx/v5"
)

// OfferRepo implements OfferRepository using PostgreSQL.
type OfferRepo struct{ db *DB }

// NewOfferRepo constructs an offer repository.
func NewOfferRepo(db *DB) *OfferRepo { return &OfferRepo{db: db} }

const selectOffer = `
SELECT o.id, o.title, o.type, o.price, o.rating, o.is_favorite, o.is_premium, o.preview_image,
       o.city, o.latitude, o.longitude, o.zoom, o.bedrooms, o.max_adults, o.goods,
       o.description, o.images, h.id, h.name, h.avatar_url, h.is_pro
FROM offers o JOIN hosts h ON h.id = o.host_id `

func scanOffer(row pgx.Row) (model.Offer, error) {
	var (
		o    model.Offer
		city string
	)
	err := row.Scan(&o.ID, &o.Title, &o.Type, &o.Price, &o.Rating, &o.IsFavorite, &o.IsPremium, &o.PreviewImage,
		&city, &o.Location.Latitude, &o.Location.Longitude, &o.Location.Zoom, &o.Bedrooms, &o.MaxAdults, &o.Goods,
		&o.Description, &o.Images, &o.Host.ID, &o.Host.Name, &o.Host.AvatarURL, &o.Host.IsPro)
	if err != nil {
		return model.Offer{}, err
	}
	if c, ok := model.CityByTitle(city); ok {
		o.City = c
	} else {
		o.City = model.City{Title: city}
	}
	return o, nil
}

func (r *OfferRepo) list(ctx context.Context, q string, args ...any) (model.Offers, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := model.Offers{}
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// List returns all offers ordered by id.
func (r *OfferRepo) List(ctx context.Context) (model.Offers, error) {
	return r.list(ctx, selectOffer+`ORDER BY o.id`)
}

// ListByCity returns the offers of one city ordered by id.
func (r *OfferRepo) ListByCity(ctx context.Context, city string) (model.Offers, error) {
	return r.list(ctx, selectOffer+`WHERE o.city=$1 ORDER BY o.id`, city)
}

// Get returns a single offer.
func (r *OfferRepo) Get(ctx context.Context, id int) (*model.Offer, error) {
	o, err := scanOffer(r.db.Pool.QueryRow(ctx, selectOffer+`WHERE o.id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}
