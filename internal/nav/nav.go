// Package nav defines the named routes of the application and a recording navigator.
package nav

import (
	"strconv"
	"strings"
	"sync"
)

// Route is a named application route.
type Route string

const (
	Main      Route = "/"
	Login     Route = "/login"
	Favorites Route = "/favorites"
	Offer     Route = "/offer/:id"
	NotFound  Route = "*"
)

// OfferPath builds the concrete path of an offer page.
func OfferPath(id int) string { return "/offer/" + strconv.Itoa(id) }

// Resolve maps a concrete path onto a route. Unknown paths resolve to NotFound.
// For Offer the second result is the offer id.
func Resolve(path string) (Route, int) {
	p := strings.TrimSuffix(path, "/")
	if p == "" {
		return Main, 0
	}
	switch Route(p) {
	case Login, Favorites:
		return Route(p), 0
	}
	if rest, ok := strings.CutPrefix(p, "/offer/"); ok {
		id, err := strconv.Atoi(rest)
		if err == nil && id > 0 {
			return Offer, id
		}
	}
	return NotFound, 0
}

// Navigator moves the user to another route.
type Navigator interface {
	Navigate(to Route)
}

// History is a Navigator that records every navigation.
type History struct {
	mu     sync.Mutex
	routes []Route
}

var _ Navigator = (*History)(nil)

// Navigate records to.
func (h *History) Navigate(to Route) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, to)
}

// Current returns the last route, Main when nothing was visited.
func (h *History) Current() Route {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.routes) == 0 {
		return Main
	}
	return h.routes[len(h.routes)-1]
}

// Routes returns a copy of the visited routes.
func (h *History) Routes() []Route {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Route(nil), h.routes...)
}
