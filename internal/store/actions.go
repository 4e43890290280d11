package store

import "github.com/and161185/six-cities/internal/model"

// Action is a request for a state transition.
type Action interface {
	Type() string
}

// ChangeCity switches the active city. Unknown ids are ignored.
type ChangeCity struct{ CityID int }

// SetHoverCard marks the card under the pointer; 0 clears it.
type SetHoverCard struct{ ID int }

// OffersRequested marks the offers list as in flight.
type OffersRequested struct{}

// OffersLoaded replaces the offers list.
type OffersLoaded struct{ Offers model.Offers }

// OffersFailed clears the in-flight flag and keeps the previous list.
type OffersFailed struct{}

// OfferRequested marks offer ID as in flight. The loaded offer is kept only when it has
// the same id.
type OfferRequested struct{ ID int }

// OfferLoaded sets the active offer.
type OfferLoaded struct{ Offer model.Offer }

// OfferFailed clears the active offer.
type OfferFailed struct{}

// NearbyRequested marks the nearby list as in flight.
type NearbyRequested struct{}

// NearbyLoaded replaces the nearby list.
type NearbyLoaded struct{ Offers model.Offers }

// NearbyFailed clears the nearby list.
type NearbyFailed struct{}

// CommentsRequested marks the comments as in flight.
type CommentsRequested struct{}

// CommentsLoaded replaces the comments of the active offer.
type CommentsLoaded struct{ Comments model.Comments }

// CommentsFailed clears the comments.
type CommentsFailed struct{}

// CommentPosted appends a freshly created comment.
type CommentPosted struct{ Comment model.Comment }

// RequireAuthorization sets the authorization status. Invalid statuses are ignored.
type RequireAuthorization struct{ Status model.AuthorizationStatus }

// SetUserData stores (or clears, when nil) the authenticated user.
type SetUserData struct{ User *model.UserData }

// SessionStarted stores the user and sets the status to Auth in one transition.
type SessionStarted struct{ User model.UserData }

// SessionEnded clears the user and sets the status to NoAuth in one transition.
type SessionEnded struct{}

func (ChangeCity) Type() string           { return "offer/changeCity" }
func (SetHoverCard) Type() string         { return "offer/setHoverCard" }
func (OffersRequested) Type() string      { return "offers/fetch/pending" }
func (OffersLoaded) Type() string         { return "offers/fetch/fulfilled" }
func (OffersFailed) Type() string         { return "offers/fetch/rejected" }
func (OfferRequested) Type() string       { return "offer/fetch/pending" }
func (OfferLoaded) Type() string          { return "offer/fetch/fulfilled" }
func (OfferFailed) Type() string          { return "offer/fetch/rejected" }
func (NearbyRequested) Type() string      { return "nearby/fetch/pending" }
func (NearbyLoaded) Type() string         { return "nearby/fetch/fulfilled" }
func (NearbyFailed) Type() string         { return "nearby/fetch/rejected" }
func (CommentsRequested) Type() string    { return "comments/fetch/pending" }
func (CommentsLoaded) Type() string       { return "comments/fetch/fulfilled" }
func (CommentsFailed) Type() string       { return "comments/fetch/rejected" }
func (CommentPosted) Type() string        { return "comments/post/fulfilled" }
func (RequireAuthorization) Type() string { return "user/requireAuthorization" }
func (SetUserData) Type() string          { return "user/setUserData" }
func (SessionStarted) Type() string       { return "user/session/started" }
func (SessionEnded) Type() string         { return "user/session/ended" }
