package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/and161185/six-cities/internal/errs"
	"github.com/and161185/six-cities/internal/model"
	"github.com/and161185/six-cities/internal/repository"
	"github.com/gofrs/uuid/v5"
)

type fakeOffers struct {
	all       model.Offers
	listCalls int
	err       error
}

var _ repository.OfferRepository = (*fakeOffers)(nil)

func (f *fakeOffers) List(context.Context) (model.Offers, error) {
	f.listCalls++
	return f.all, f.err
}

func (f *fakeOffers) ListByCity(_ context.Context, city string) (model.Offers, error) {
	f.listCalls++
	var out model.Offers
	for _, o := range f.all {
		if o.City.Title == city {
			out = append(out, o)
		}
	}
	return out, f.err
}

func (f *fakeOffers) Get(_ context.Context, id int) (*model.Offer, error) {
	for _, o := range f.all {
		if o.ID == id {
			c := o
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

type fakeComments struct {
	byOffer map[int]model.Comments
	created []model.CommentPost
}

var _ repository.CommentRepository = (*fakeComments)(nil)

func (f *fakeComments) ListByOffer(_ context.Context, id int) (model.Comments, error) {
	return f.byOffer[id], nil
}

func (f *fakeComments) Create(_ context.Context, id int, _ uuid.UUID, p model.CommentPost) (model.Comment, error) {
	f.created = append(f.created, p)
	return model.Comment{ID: len(f.created), Rating: p.Rating, Comment: p.Comment}, nil
}

type mapCache map[string]model.Offers

func (m mapCache) Get(_ context.Context, city string) (model.Offers, bool) {
	o, ok := m[city]
	return o, ok
}
func (m mapCache) Put(_ context.Context, city string, o model.Offers) { m[city] = o }

func at(id int, city model.City, lat, lon float64) model.Offer {
	return model.Offer{ID: id, City: city, Location: model.Location{Latitude: lat, Longitude: lon}}
}

func fixture() *fakeOffers {
	paris, ams := model.Cities[0], model.Cities[3]
	return &fakeOffers{all: model.Offers{
		at(1, paris, 48.8566, 2.3522),
		at(2, paris, 48.90, 2.40),
		at(3, paris, 48.8570, 2.3530),
		at(4, paris, 49.50, 3.00),
		at(5, paris, 48.86, 2.36),
		at(6, ams, 52.37, 4.89),
	}}
}

func TestOfferService_ListUsesCache(t *testing.T) {
	t.Parallel()
	repo := fixture()
	cache := mapCache{}
	s := NewOfferService(repo, &fakeComments{}, cache)
	ctx := context.Background()

	paris, err := s.List(ctx, "Paris")
	if err != nil || len(paris) != 5 {
		t.Fatalf("List Paris: %d %v", len(paris), err)
	}
	if _, err := s.List(ctx, "Paris"); err != nil {
		t.Fatalf("List Paris again: %v", err)
	}
	if repo.listCalls != 1 {
		t.Fatalf("repo calls = %d, want 1 (second read from cache)", repo.listCalls)
	}

	all, err := s.List(ctx, "")
	if err != nil || len(all) != 6 {
		t.Fatalf("List all: %d %v", len(all), err)
	}

	repo.err = errors.New("db")
	if _, err := s.List(ctx, "Amsterdam"); err == nil {
		t.Fatalf("want repo error")
	}
	if _, ok := cache["Amsterdam"]; ok {
		t.Fatalf("failed reads must not be cached")
	}
}

func TestOfferService_NearbyOrderedByDistance(t *testing.T) {
	t.Parallel()
	s := NewOfferService(fixture(), &fakeComments{}, nil)

	got, err := s.Nearby(context.Background(), 1)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	var ids []int
	for _, o := range got {
		ids = append(ids, o.ID)
	}
	want := []int{3, 5, 2}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}

	if _, err := s.Nearby(context.Background(), 42); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestClosestOffers_FewCandidates(t *testing.T) {
	t.Parallel()
	paris := model.Cities[0]
	origin := at(1, paris, 48.85, 2.35)
	got := ClosestOffers(origin, model.Offers{origin, at(2, paris, 48.86, 2.35)}, 3)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("got %+v", got)
	}
	if len(ClosestOffers(origin, nil, 3)) != 0 {
		t.Fatalf("want empty")
	}
}

func TestOfferService_Comments(t *testing.T) {
	t.Parallel()
	cm := &fakeComments{byOffer: map[int]model.Comments{1: {{ID: 7}}}}
	s := NewOfferService(fixture(), cm, nil)
	ctx := context.Background()

	got, err := s.Comments(ctx, 1)
	if err != nil || len(got) != 1 {
		t.Fatalf("Comments: %+v %v", got, err)
	}
	if _, err := s.Comments(ctx, 99); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	u := model.User{ID: uuid.Must(uuid.NewV4())}
	if _, err := s.PostComment(ctx, 1, u, model.CommentPost{Comment: "short", Rating: 4}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	long := strings.Repeat("a", model.CommentMinLen)
	if _, err := s.PostComment(ctx, 1, u, model.CommentPost{Comment: long, Rating: 6}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want ErrValidation on rating, got %v", err)
	}
	c, err := s.PostComment(ctx, 1, u, model.CommentPost{Comment: long, Rating: 5})
	if err != nil || c.Rating != 5 || len(cm.created) != 1 {
		t.Fatalf("PostComment: %+v %v", c, err)
	}
}
