package model

import (
	"testing"

	"github.com/gofrs/uuid/v5"
)

func TestAuthorizationStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range []AuthorizationStatus{AuthUnknown, NoAuth, Auth} {
		if !s.Valid() {
			t.Fatalf("%q should be valid", s)
		}
	}
	if AuthorizationStatus("MAYBE").Valid() {
		t.Fatalf("unexpected status accepted")
	}
}

func TestCityLookup(t *testing.T) {
	t.Parallel()

	if len(Cities) != 6 {
		t.Fatalf("want 6 cities, got %d", len(Cities))
	}
	c, ok := CityByID(4)
	if !ok || c.Title != "Amsterdam" {
		t.Fatalf("CityByID(4)=%+v,%v", c, ok)
	}
	if _, ok := CityByID(42); ok {
		t.Fatalf("unknown id must not resolve")
	}
	c, ok = CityByTitle("Hamburg")
	if !ok || c.ID != 5 {
		t.Fatalf("CityByTitle(Hamburg)=%+v,%v", c, ok)
	}
	if titles := CityTitles(); len(titles) != 6 || titles[0] != "Paris" || titles[5] != "Dusseldorf" {
		t.Fatalf("titles=%v", titles)
	}
	if DefaultCity.Title != "Paris" {
		t.Fatalf("default city=%q", DefaultCity.Title)
	}
}

func TestUser_UserData(t *testing.T) {
	t.Parallel()

	id := uuid.Must(uuid.NewV4())
	u := User{ID: id, Email: "a@b.com", Name: "a", IsPro: true}
	d := u.UserData("tok")
	if d.ID != id.String() || d.Email != "a@b.com" || d.Token != "tok" || !d.IsPro {
		t.Fatalf("bad projection: %+v", d)
	}
}
