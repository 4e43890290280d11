package store

import "github.com/and161185/six-cities/internal/model"

// Reduce applies a to s and returns the next snapshot. Slices untouched by a are shared
// with s; touched slices are copied, so earlier snapshots never change.
func Reduce(s State, a Action) State {
	return State{
		Offer: reduceOffer(s.Offer, a),
		User:  reduceUser(s.User, a),
	}
}

func reduceOffer(s *OfferData, a Action) *OfferData {
	if s == nil {
		// Namespace is initialized lazily by the first action it handles.
		if !handlesOffer(a) {
			return nil
		}
		s = &OfferData{City: model.DefaultCity}
	}
	next := *s

	switch a := a.(type) {
	case ChangeCity:
		city, ok := model.CityByID(a.CityID)
		if !ok || city.ID == s.City.ID {
			return s
		}
		next.City = city
	case SetHoverCard:
		if a.ID == s.HoverCardID {
			return s
		}
		next.HoverCardID = a.ID
	case OffersRequested:
		next.Offers.Loading = true
	case OffersLoaded:
		next.Offers = OffersState{Items: a.Offers}
	case OffersFailed:
		next.Offers.Loading = false
	case OfferRequested:
		next.Offer = OfferState{Loading: true}
		if d := s.Offer.Data; d != nil && d.ID == a.ID {
			next.Offer.Data = d
		}
	case OfferLoaded:
		offer := a.Offer
		next.Offer = OfferState{Data: &offer}
	case OfferFailed:
		next.Offer = OfferState{}
	case NearbyRequested:
		next.OffersNearby.Loading = true
	case NearbyLoaded:
		next.OffersNearby = OffersState{Items: a.Offers}
	case NearbyFailed:
		next.OffersNearby = OffersState{}
	case CommentsRequested:
		next.OfferComments.Loading = true
	case CommentsLoaded:
		next.OfferComments = CommentsState{Items: a.Comments}
	case CommentsFailed:
		next.OfferComments = CommentsState{}
	case CommentPosted:
		items := make(model.Comments, 0, len(s.OfferComments.Items)+1)
		items = append(items, s.OfferComments.Items...)
		next.OfferComments = CommentsState{Items: append(items, a.Comment)}
	default:
		return s
	}
	return &next
}

func handlesOffer(a Action) bool {
	switch a.(type) {
	case ChangeCity, SetHoverCard,
		OffersRequested, OffersLoaded, OffersFailed,
		OfferRequested, OfferLoaded, OfferFailed,
		NearbyRequested, NearbyLoaded, NearbyFailed,
		CommentsRequested, CommentsLoaded, CommentsFailed, CommentPosted:
		return true
	}
	return false
}

func reduceUser(s *UserProcess, a Action) *UserProcess {
	if s == nil {
		switch a.(type) {
		case RequireAuthorization, SetUserData, SessionStarted, SessionEnded:
			s = &UserProcess{AuthorizationStatus: model.AuthUnknown}
		default:
			return nil
		}
	}
	next := *s

	switch a := a.(type) {
	case RequireAuthorization:
		if !a.Status.Valid() {
			return s
		}
		next.AuthorizationStatus = a.Status
	case SetUserData:
		if a.User == nil {
			next.User = nil
		} else {
			u := *a.User
			next.User = &u
		}
	case SessionStarted:
		u := a.User
		next.User = &u
		next.AuthorizationStatus = model.Auth
	case SessionEnded:
		if s.User == nil && s.AuthorizationStatus == model.NoAuth {
			return s
		}
		next.User = nil
		next.AuthorizationStatus = model.NoAuth
	default:
		return s
	}
	return &next
}
