package store

import "github.com/and161185/six-cities/internal/model"

// Selectors read one fixed path of the state and fall back to a safe default when the
// namespace is not initialized.

func CurrentCity(s State) model.City {
	if s.Offer == nil || s.Offer.City.ID == 0 {
		return model.DefaultCity
	}
	return s.Offer.City
}

func Offers(s State) model.Offers {
	if s.Offer == nil || s.Offer.Offers.Items == nil {
		return model.Offers{}
	}
	return s.Offer.Offers.Items
}

func OffersCount(s State) int { return len(Offers(s)) }

func OffersLoading(s State) bool {
	return s.Offer != nil && s.Offer.Offers.Loading
}

// CityOffers returns the offers located in the current city, in list order.
func CityOffers(s State) model.Offers {
	city := CurrentCity(s)
	out := model.Offers{}
	for _, o := range Offers(s) {
		if o.City.Title == city.Title {
			out = append(out, o)
		}
	}
	return out
}

func ActiveOffer(s State) *model.Offer {
	if s.Offer == nil {
		return nil
	}
	return s.Offer.Offer.Data
}

func OfferLoading(s State) bool {
	return s.Offer != nil && s.Offer.Offer.Loading
}

func HoveredCardID(s State) int {
	if s.Offer == nil {
		return 0
	}
	return s.Offer.HoverCardID
}

func Comments(s State) model.Comments {
	if s.Offer == nil || s.Offer.OfferComments.Items == nil {
		return model.Comments{}
	}
	return s.Offer.OfferComments.Items
}

func NearbyOffers(s State) model.Offers {
	if s.Offer == nil || s.Offer.OffersNearby.Items == nil {
		return model.Offers{}
	}
	return s.Offer.OffersNearby.Items
}

func AuthorizationStatus(s State) model.AuthorizationStatus {
	if s.User == nil || !s.User.AuthorizationStatus.Valid() {
		return model.AuthUnknown
	}
	return s.User.AuthorizationStatus
}

func UserData(s State) *model.UserData {
	if s.User == nil {
		return nil
	}
	return s.User.User
}
