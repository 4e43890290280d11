// Package store holds the normalized client state and the transitions applied to it.
//
// State is split into namespaces. Each namespace owns one slice and one reducer; every
// mutation goes through Store.Dispatch, which applies reducers one action at a time.
package store

import "github.com/and161185/six-cities/internal/model"

// NameSpace names a partition of the state.
type NameSpace string

const (
	NameSpaceOffer NameSpace = "OFFER"
	NameSpaceUser  NameSpace = "USER"
)

// OffersState is a fetched offers collection.
type OffersState struct {
	Items   model.Offers
	Loading bool
}

// OfferState is a single fetched offer.
type OfferState struct {
	Data    *model.Offer
	Loading bool
}

// CommentsState is a fetched comments collection.
type CommentsState struct {
	Items   model.Comments
	Loading bool
}

// OfferData is the OFFER namespace slice.
type OfferData struct {
	City          model.City
	Offers        OffersState
	Offer         OfferState
	OfferComments CommentsState
	OffersNearby  OffersState
	HoverCardID   int
}

// UserProcess is the USER namespace slice.
type UserProcess struct {
	AuthorizationStatus model.AuthorizationStatus
	User                *model.UserData
}

// State is an immutable snapshot of the whole store. A nil slice means the namespace
// has not been initialized yet.
type State struct {
	Offer *OfferData
	User  *UserProcess
}

// Initial returns the state the application starts with.
func Initial() State {
	return State{
		Offer: &OfferData{City: model.DefaultCity},
		User:  &UserProcess{AuthorizationStatus: model.AuthUnknown},
	}
}
