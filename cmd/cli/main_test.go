package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/and161185/six-cities/internal/api"
	"github.com/and161185/six-cities/internal/model"
	"github.com/and161185/six-cities/internal/view"
)

type fakeBackend struct {
	offers     model.Offers
	logins     atomic.Int32
	commentsIn atomic.Int32
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) offer(r *http.Request) (model.Offer, bool) {
	id, _ := strconv.Atoi(r.PathValue("id"))
	for _, o := range b.offers {
		if o.ID == id {
			return o, true
		}
	}
	return model.Offer{}, false
}

func (b *fakeBackend) handler() http.Handler {
	user := model.UserData{ID: "u1", Email: "oliver@mail.com", Name: "Oliver", Token: "tok"}
	authed := func(r *http.Request) bool { return r.Header.Get(api.TokenHeader) == "tok" }
	notFound := map[string]string{"error": "not found"}
	unauthorized := map[string]string{"error": "unauthorized"}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /six-cities/login", func(w http.ResponseWriter, r *http.Request) {
		b.logins.Add(1)
		var ad model.AuthData
		_ = json.NewDecoder(r.Body).Decode(&ad)
		if ad.Login != user.Email || ad.Password != "secret1" {
			writeJSON(w, http.StatusUnauthorized, unauthorized)
			return
		}
		writeJSON(w, http.StatusOK, user)
	})
	mux.HandleFunc("GET /six-cities/login", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			writeJSON(w, http.StatusUnauthorized, unauthorized)
			return
		}
		writeJSON(w, http.StatusOK, user)
	})
	mux.HandleFunc("DELETE /six-cities/logout", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /six-cities/offers", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, b.offers)
	})
	mux.HandleFunc("GET /six-cities/offers/{id}", func(w http.ResponseWriter, r *http.Request) {
		o, ok := b.offer(r)
		if !ok {
			writeJSON(w, http.StatusNotFound, notFound)
			return
		}
		writeJSON(w, http.StatusOK, o)
	})
	mux.HandleFunc("GET /six-cities/offers/{id}/nearby", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := b.offer(r); !ok {
			writeJSON(w, http.StatusNotFound, notFound)
			return
		}
		writeJSON(w, http.StatusOK, b.offers[1:2])
	})
	mux.HandleFunc("GET /six-cities/comments/{id}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, model.Comments{{
			ID: 1, User: model.Reviewer{Name: "Kate"}, Rating: 4,
			Comment: "Lovely place", Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		}})
	})
	mux.HandleFunc("POST /six-cities/comments/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			writeJSON(w, http.StatusUnauthorized, unauthorized)
			return
		}
		b.commentsIn.Add(1)
		var p model.CommentPost
		_ = json.NewDecoder(r.Body).Decode(&p)
		writeJSON(w, http.StatusCreated, model.Comment{ID: 2, Rating: p.Rating, Comment: p.Comment, Date: time.Now()})
	})
	return mux
}

func newBackend(t *testing.T) (*httptest.Server, *fakeBackend) {
	t.Helper()
	paris, ams := model.Cities[0], model.Cities[3]
	b := &fakeBackend{offers: model.Offers{
		{ID: 1, Title: "Loft", Type: "apartment", Price: 120, Rating: 4.5, City: paris, IsPremium: true,
			Goods: []string{"Wi-Fi"}, Host: model.Host{Name: "Angelina", IsPro: true}},
		{ID: 2, Title: "Room", Type: "room", Price: 80, Rating: 4.0, City: paris},
		{ID: 3, Title: "Canal house", Type: "house", Price: 250, Rating: 4.9, City: ams},
		{ID: 4, Title: "Studio", Type: "apartment", Price: 140, Rating: 4.3, City: ams},
	}}
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)
	return srv, b
}

func run(t *testing.T, srv *httptest.Server, home string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(append([]string{"--api", srv.URL + "/six-cities", "--home", home}, args...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd(&out, &out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "sixcities dev")
}

func TestLoginStatusLogout(t *testing.T) {
	srv, b := newBackend(t)
	home := t.TempDir()

	out, _, err := run(t, srv, home, "status")
	require.NoError(t, err)
	require.Contains(t, out, "Status: NO_AUTH")

	_, errOut, err := run(t, srv, home, "login", "-e", "oliver@mail.com", "-p", "secret")
	require.Error(t, err)
	require.Contains(t, errOut, "letter and one digit")
	require.Zero(t, b.logins.Load(), "invalid password must not reach the server")

	_, errOut, err = run(t, srv, home, "login", "-e", "oliver@mail.com", "-p", "wrong1")
	require.Error(t, err)
	require.Contains(t, errOut, "Invalid email or password")

	out, _, err = run(t, srv, home, "login", "-e", "oliver@mail.com", "-p", "secret1")
	require.NoError(t, err)
	require.Contains(t, out, "Signed in as oliver@mail.com")
	require.FileExists(t, filepath.Join(home, "token.json"))

	out, _, err = run(t, srv, home, "status")
	require.NoError(t, err)
	require.Contains(t, out, "Status: AUTH")
	require.Contains(t, out, "Oliver <oliver@mail.com>")

	out, _, err = run(t, srv, home, "suggest")
	require.NoError(t, err)
	require.Contains(t, out, "Already signed in")

	out, _, err = run(t, srv, home, "logout")
	require.NoError(t, err)
	require.Contains(t, out, "Signed out")
	_, statErr := os.Stat(filepath.Join(home, "token.json"))
	require.True(t, os.IsNotExist(statErr))

	out, _, err = run(t, srv, home, "suggest")
	require.NoError(t, err)
	require.Contains(t, out, "Try ")
}

func TestOffers_CityAndSort(t *testing.T) {
	srv, _ := newBackend(t)
	home := t.TempDir()

	out, _, err := run(t, srv, home, "offers")
	require.NoError(t, err)
	require.Contains(t, out, "2 places to stay in Paris")
	require.Contains(t, out, "[Premium] Loft")

	out, _, err = run(t, srv, home, "offers", "--city", "amsterdam", "--sort", "price-desc", "--json")
	require.NoError(t, err)
	var got model.Offers
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	require.Equal(t, 3, got[0].ID)
	require.Equal(t, 4, got[1].ID)

	_, _, err = run(t, srv, home, "offers", "--sort", "cheapest")
	require.ErrorContains(t, err, "unknown sort")
	require.ErrorContains(t, err, "rating (Top rated first)")

	out, _, err = run(t, srv, home, "offers", "--city", "Paris", "--highlight", "2")
	require.NoError(t, err)
	require.Contains(t, out, "> Room")
	require.NotContains(t, out, "> [Premium] Loft")

	out, _, err = run(t, srv, home, "offers", "--help")
	require.NoError(t, err)
	require.Contains(t, out, "price-asc (Price: low to high)")

	out, _, err = run(t, srv, home, "offers", "--city", "Cologne")
	require.NoError(t, err)
	require.Contains(t, out, "No places to stay available in Cologne")
}

func TestCity_Persists(t *testing.T) {
	srv, _ := newBackend(t)
	home := t.TempDir()

	out, _, err := run(t, srv, home, "city", "4")
	require.NoError(t, err)
	require.Contains(t, out, "City: Amsterdam (/)")

	out, _, err = run(t, srv, home, "cities")
	require.NoError(t, err)
	require.Contains(t, out, "* 4 Amsterdam")

	out, _, err = run(t, srv, home, "offers")
	require.NoError(t, err)
	require.Contains(t, out, "places to stay in Amsterdam")

	_, _, err = run(t, srv, home, "city", "Atlantis")
	require.ErrorContains(t, err, "unknown city")
}

func TestOffer_PageAndNotFound(t *testing.T) {
	srv, _ := newBackend(t)
	home := t.TempDir()

	out, _, err := run(t, srv, home, "offer", "1")
	require.NoError(t, err)
	require.Contains(t, out, "Loft")
	require.Contains(t, out, "Host: Angelina (Pro)")
	require.Contains(t, out, "Reviews · 1")
	require.Contains(t, out, "Other places in the neighbourhood")
	require.Contains(t, out, "Sign in to leave a review")

	out, _, err = run(t, srv, home, "offer", "99")
	require.ErrorIs(t, err, errNotFound)
	require.Contains(t, out, view.NotFound().Heading)

	out, _, err = run(t, srv, home, "open", "/nope")
	require.ErrorIs(t, err, errNotFound)
	require.Contains(t, out, "404. Page not found")

	out, _, err = run(t, srv, home, "open", "/offer/3")
	require.NoError(t, err)
	require.Contains(t, out, "Canal house")

	_, _, err = run(t, srv, home, "offer", "x")
	require.ErrorContains(t, err, "bad offer id")
}

func TestComment(t *testing.T) {
	srv, b := newBackend(t)
	home := t.TempDir()
	text := strings.Repeat("Quiet, clean and close to everything. ", 2)

	_, _, err := run(t, srv, home, "comment", "1", "-r", "5", "-t", text)
	require.ErrorIs(t, err, errNotSignedIn)

	_, _, err = run(t, srv, home, "login", "-e", "oliver@mail.com", "-p", "secret1")
	require.NoError(t, err)

	_, errOut, err := run(t, srv, home, "comment", "1", "-r", "5", "-t", "too short")
	require.Error(t, err)
	require.Contains(t, errOut, "comment")
	require.Zero(t, b.commentsIn.Load())

	out, _, err := run(t, srv, home, "comment", "1", "-r", "5", "-t", text)
	require.NoError(t, err)
	require.Contains(t, out, "Review posted")
	require.EqualValues(t, 1, b.commentsIn.Load())
}

func TestStats(t *testing.T) {
	srv, _ := newBackend(t)

	out, _, err := run(t, srv, t.TempDir(), "stats", "--json")
	require.NoError(t, err)
	var st []view.CityStat
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	require.Len(t, st, 2)
	require.Equal(t, "Paris", st[0].City)
	require.InDelta(t, 100, st[0].MeanPrice, 1e-9)
}

func TestOpen_FavoritesRequiresLogin(t *testing.T) {
	srv, _ := newBackend(t)
	_, _, err := run(t, srv, t.TempDir(), "open", "/favorites")
	require.ErrorIs(t, err, errNotSignedIn)
}

func TestPrefs_RoundTrip(t *testing.T) {
	home := t.TempDir()
	p, err := loadPrefs(home)
	require.NoError(t, err)
	require.Zero(t, p.CityID)

	require.NoError(t, savePrefs(home, prefs{CityID: 5}))
	p, err = loadPrefs(home)
	require.NoError(t, err)
	require.Equal(t, 5, p.CityID)
}
