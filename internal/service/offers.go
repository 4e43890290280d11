package service

import (
	"context"
	"sort"

	"github.com/and161185/six-cities/internal/model"
	"github.com/and161185/six-cities/internal/repository"
	"github.com/and161185/six-cities/internal/validate"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// NearbyLimit caps the nearby list.
const NearbyLimit = 3

// OfferCache stores offer lists per city title ("" for all cities).
type OfferCache interface {
	Get(ctx context.Context, city string) (model.Offers, bool)
	Put(ctx context.Context, city string, offers model.Offers)
}

// OfferService defines read access to offers and comment posting.
type OfferService interface {
	// List returns the offers of city, or all offers when city is empty.
	List(ctx context.Context, city string) (model.Offers, error)
	// Get returns one offer.
	Get(ctx context.Context, id int) (model.Offer, error)
	// Nearby returns up to NearbyLimit offers of the same city, closest first.
	Nearby(ctx context.Context, id int) (model.Offers, error)
	// Comments returns the comments of an existing offer.
	Comments(ctx context.Context, id int) (model.Comments, error)
	// PostComment validates and stores a comment from u.
	PostComment(ctx context.Context, id int, u model.User, p model.CommentPost) (model.Comment, error)
}

type OfferServiceImpl struct {
	offers   repository.OfferRepository
	comments repository.CommentRepository
	cache    OfferCache
}

var _ OfferService = (*OfferServiceImpl)(nil)

type nopCache struct{}

func (nopCache) Get(context.Context, string) (model.Offers, bool) { return nil, false }
func (nopCache) Put(context.Context, string, model.Offers)         {}

// NewOfferService constructs OfferService. cache may be nil.
func NewOfferService(offers repository.OfferRepository, comments repository.CommentRepository, cache OfferCache) *OfferServiceImpl {
	if cache == nil {
		cache = nopCache{}
	}
	return &OfferServiceImpl{offers: offers, comments: comments, cache: cache}
}

func (s *OfferServiceImpl) List(ctx context.Context, city string) (model.Offers, error) {
	if out, ok := s.cache.Get(ctx, city); ok {
		return out, nil
	}
	var (
		out model.Offers
		err error
	)
	if city == "" {
		out, err = s.offers.List(ctx)
	} else {
		out, err = s.offers.ListByCity(ctx, city)
	}
	if err != nil {
		return nil, err
	}
	s.cache.Put(ctx, city, out)
	return out, nil
}

func (s *OfferServiceImpl) Get(ctx context.Context, id int) (model.Offer, error) {
	o, err := s.offers.Get(ctx, id)
	if err != nil {
		return model.Offer{}, err
	}
	return *o, nil
}

func (s *OfferServiceImpl) Nearby(ctx context.Context, id int) (model.Offers, error) {
	o, err := s.offers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	same, err := s.List(ctx, o.City.Title)
	if err != nil {
		return nil, err
	}
	return ClosestOffers(*o, same, NearbyLimit), nil
}

// ClosestOffers returns at most limit offers from candidates other than origin,
// ordered by great-circle distance from origin. Ties keep candidate order.
func ClosestOffers(origin model.Offer, candidates model.Offers, limit int) model.Offers {
	from := point(origin.Location)
	type ranked struct {
		offer model.Offer
		dist  float64
	}
	rs := make([]ranked, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == origin.ID {
			continue
		}
		rs = append(rs, ranked{offer: c, dist: geo.Distance(from, point(c.Location))})
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].dist < rs[j].dist })
	if len(rs) > limit {
		rs = rs[:limit]
	}
	out := make(model.Offers, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.offer)
	}
	return out
}

func point(l model.Location) orb.Point { return orb.Point{l.Longitude, l.Latitude} }

func (s *OfferServiceImpl) Comments(ctx context.Context, id int) (model.Comments, error) {
	if _, err := s.offers.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.comments.ListByOffer(ctx, id)
}

func (s *OfferServiceImpl) PostComment(ctx context.Context, id int, u model.User, p model.CommentPost) (model.Comment, error) {
	if err := validate.Comment(p); err != nil {
		return model.Comment{}, err
	}
	return s.comments.Create(ctx, id, u.ID, p)
}
