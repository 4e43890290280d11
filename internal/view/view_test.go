package view

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/and161185/six-cities/internal/model"
	"github.com/and161185/six-cities/internal/nav"
	"github.com/and161185/six-cities/internal/store"
	"github.com/stretchr/testify/require"
)

type fixedIntN int

func (f fixedIntN) IntN(int) int { return int(f) }

func TestLogin(t *testing.T) {
	t.Parallel()

	s := store.Initial()
	p := Login(s, fixedIntN(2))
	require.Empty(t, p.RedirectTo)
	require.Equal(t, "Brussels", p.SuggestedCity.Title)

	p = Login(s, rand.New(rand.NewPCG(7, 7)))
	_, ok := model.CityByID(p.SuggestedCity.ID)
	require.True(t, ok)

	s = store.Reduce(s, store.RequireAuthorization{Status: model.Auth})
	require.Equal(t, nav.Main, Login(s, fixedIntN(0)).RedirectTo)
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	p := NotFound()
	require.Equal(t, "404. Page not found", p.Heading)
	require.Equal(t, nav.Main, p.LinkTo)
}

func sampleOffers() model.Offers {
	paris, _ := model.CityByTitle("Paris")
	ams, _ := model.CityByTitle("Amsterdam")
	return model.Offers{
		{ID: 1, City: paris, Price: 200, Rating: 4.1},
		{ID: 2, City: paris, Price: 100, Rating: 4.9},
		{ID: 3, City: ams, Price: 300, Rating: 3.0},
		{ID: 4, City: paris, Price: 150, Rating: 4.5},
	}
}

func TestMain_FiltersAndSorts(t *testing.T) {
	t.Parallel()

	s := store.Reduce(store.Initial(), store.OffersLoaded{Offers: sampleOffers()})

	p := Main(s, SortPopular)
	require.Equal(t, "Paris", p.City.Title)
	require.Equal(t, 3, p.PlacesCount)
	require.Equal(t, []int{1, 2, 4}, ids(p.Offers))
	require.False(t, p.Empty)

	require.Equal(t, []int{2, 4, 1}, ids(Main(s, SortPriceLowToHigh).Offers))
	require.Equal(t, []int{1, 4, 2}, ids(Main(s, SortPriceHighToLow).Offers))
	require.Equal(t, []int{2, 4, 1}, ids(Main(s, SortTopRatedFirst).Offers))
	require.Equal(t, []int{1, 2, 3, 4}, ids(store.Offers(s)), "store list must keep its order")

	s = store.Reduce(s, store.ChangeCity{CityID: 2})
	p = Main(s, SortPopular)
	require.True(t, p.Empty)
	require.Len(t, p.Cities, 6)
}

func TestOffer_LimitsAndOrder(t *testing.T) {
	t.Parallel()

	now := time.Now()
	var comments model.Comments
	for i := 1; i <= 12; i++ {
		comments = append(comments, model.Comment{ID: i, Date: now.Add(time.Duration(i) * time.Hour)})
	}
	s := store.Initial()
	s = store.Reduce(s, store.OfferLoaded{Offer: model.Offer{ID: 1}})
	s = store.Reduce(s, store.NearbyLoaded{Offers: sampleOffers()})
	s = store.Reduce(s, store.CommentsLoaded{Comments: comments})

	p := Offer(s)
	require.Equal(t, 1, p.Offer.ID)
	require.Len(t, p.Nearby, 3)
	require.Len(t, p.Comments, 10)
	require.Equal(t, 12, p.Comments[0].ID)
	require.False(t, p.CanComment)
	require.Equal(t, 1, store.Comments(s)[0].ID, "store comments must keep their order")
}

func TestPriceStats(t *testing.T) {
	t.Parallel()

	st := PriceStats(sampleOffers())
	require.Len(t, st, 2)
	require.Equal(t, "Paris", st[0].City)
	require.Equal(t, 3, st[0].Offers)
	require.InDelta(t, 150.0, st[0].MeanPrice, 1e-9)
	require.InDelta(t, 150.0, st[0].MedianPrice, 1e-9)
	require.Equal(t, "Amsterdam", st[1].City)
	require.InDelta(t, 3.0, st[1].MeanRating, 1e-9)

	require.Empty(t, PriceStats(nil))
}

func ids(o model.Offers) []int {
	out := make([]int, 0, len(o))
	for _, v := range o {
		out = append(out, v.ID)
	}
	return out
}
