package actions

import (
	"github.com/and161185/six-cities/internal/model"
	"github.com/and161185/six-cities/internal/nav"
	"github.com/and161185/six-cities/internal/store"
)

// SelectCity makes cityID the active city and navigates to Main. Selecting the
// current city changes nothing but still navigates.
func (d *Dispatcher) SelectCity(cityID int) {
	if cityID != store.CurrentCity(d.store.State()).ID {
		d.store.Dispatch(store.ChangeCity{CityID: cityID})
	}
	d.nav.Navigate(nav.Main)
}

// IntN is a pseudo-random source; *rand.Rand from math/rand/v2 satisfies it.
type IntN interface {
	IntN(n int) int
}

// RandomCity picks one of the known cities.
func RandomCity(src IntN) model.City {
	return model.Cities[src.IntN(len(model.Cities))]
}
