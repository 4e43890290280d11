// Package view projects store state into page view-models. Nothing here renders markup.
package view

import (
	"sort"

	"github.com/and161185/six-cities/internal/actions"
	"github.com/and161185/six-cities/internal/model"
	"github.com/and161185/six-cities/internal/nav"
	"github.com/and161185/six-cities/internal/store"
)

// LoginPage is the sign-in page.
type LoginPage struct {
	Title         string
	RedirectTo    nav.Route // non-empty when the page must not be shown
	SuggestedCity model.City
}

// Login builds the login page. An authorized user is redirected to Main.
func Login(s store.State, src actions.IntN) LoginPage {
	if store.AuthorizationStatus(s) == model.Auth {
		return LoginPage{RedirectTo: nav.Main}
	}
	return LoginPage{Title: "Sign in", SuggestedCity: actions.RandomCity(src)}
}

// NotFoundPage is the 404 page.
type NotFoundPage struct {
	Title    string
	Heading  string
	LinkText string
	LinkTo   nav.Route
}

// NotFound builds the 404 page.
func NotFound() NotFoundPage {
	return NotFoundPage{
		Title:    "Page not found",
		Heading:  "404. Page not found",
		LinkText: "Back to the main page",
		LinkTo:   nav.Main,
	}
}

// SortOption orders offers on the main page.
type SortOption string

const (
	SortPopular        SortOption = "Popular"
	SortPriceLowToHigh SortOption = "Price: low to high"
	SortPriceHighToLow SortOption = "Price: high to low"
	SortTopRatedFirst  SortOption = "Top rated first"
)

// SortOptions lists the options in menu order.
var SortOptions = []SortOption{SortPopular, SortPriceLowToHigh, SortPriceHighToLow, SortTopRatedFirst}

// MainPage is the offers list of the active city.
type MainPage struct {
	City        model.City
	Cities      []model.City
	Offers      model.Offers
	PlacesCount int
	Loading     bool
	Empty       bool
	HoveredID   int
	Sort        SortOption
}

// Main builds the main page. The store list is never reordered in place.
func Main(s store.State, sortBy SortOption) MainPage {
	offers := SortOffers(store.CityOffers(s), sortBy)
	loading := store.OffersLoading(s)
	return MainPage{
		City:        store.CurrentCity(s),
		Cities:      model.Cities,
		Offers:      offers,
		PlacesCount: len(offers),
		Loading:     loading,
		Empty:       !loading && len(offers) == 0,
		HoveredID:   store.HoveredCardID(s),
		Sort:        sortBy,
	}
}

// SortOffers returns a sorted copy of offers. Popular keeps the server order.
func SortOffers(offers model.Offers, by SortOption) model.Offers {
	out := append(model.Offers{}, offers...)
	switch by {
	case SortPriceLowToHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHighToLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortTopRatedFirst:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out
}

const (
	maxNearby   = 3
	maxComments = 10
)

// OfferPage is a single offer with its neighbourhood and reviews.
type OfferPage struct {
	Offer      *model.Offer
	Loading    bool
	Nearby     model.Offers
	Comments   model.Comments
	CanComment bool
}

// Offer builds the offer page: up to three nearby offers and the ten newest comments.
func Offer(s store.State) OfferPage {
	nearby := store.NearbyOffers(s)
	if len(nearby) > maxNearby {
		nearby = nearby[:maxNearby]
	}

	comments := append(model.Comments{}, store.Comments(s)...)
	sort.SliceStable(comments, func(i, j int) bool { return comments[i].Date.After(comments[j].Date) })
	if len(comments) > maxComments {
		comments = comments[:maxComments]
	}

	return OfferPage{
		Offer:      store.ActiveOffer(s),
		Loading:    store.OfferLoading(s),
		Nearby:     nearby,
		Comments:   comments,
		CanComment: store.AuthorizationStatus(s) == model.Auth,
	}
}
