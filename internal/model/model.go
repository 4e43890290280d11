// Package model defines domain entities shared by the client store, the API client and the server.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// AuthorizationStatus is the session state known to the client.
type AuthorizationStatus string

const (
	AuthUnknown AuthorizationStatus = "UNKNOWN"
	NoAuth      AuthorizationStatus = "NO_AUTH"
	Auth        AuthorizationStatus = "AUTH"
)

// Valid reports whether s is one of the enumerated statuses.
func (s AuthorizationStatus) Valid() bool {
	switch s {
	case AuthUnknown, NoAuth, Auth:
		return true
	}
	return false
}

// Location is a map position with the zoom level the map should use.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
}

// City is one of the fixed destinations offered by the service.
type City struct {
	ID       int      `json:"id"`
	Title    string   `json:"name"`
	Location Location `json:"location"`
}

// Host is the owner of an offer.
type Host struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	IsPro     bool   `json:"isPro"`
}

// Offer is a rental listing.
type Offer struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Type         string   `json:"type"`
	Price        int      `json:"price"`
	Rating       float64  `json:"rating"`
	IsFavorite   bool     `json:"isFavorite"`
	IsPremium    bool     `json:"isPremium"`
	PreviewImage string   `json:"previewImage"`
	City         City     `json:"city"`
	Location     Location `json:"location"`
	Bedrooms     int      `json:"bedrooms"`
	MaxAdults    int      `json:"maxAdults"`
	Goods        []string `json:"goods"`
	Host         Host     `json:"host"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
}

// Offers is an ordered offers collection.
type Offers []Offer

// Reviewer is the author of a comment as shown next to it.
type Reviewer struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	IsPro     bool   `json:"isPro"`
}

// Comment is a review left on an offer.
type Comment struct {
	ID      int       `json:"id"`
	User    Reviewer  `json:"user"`
	Rating  int       `json:"rating"`
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
}

// Comments is an ordered comments collection.
type Comments []Comment

// CommentPost is a review submitted by an authorized user.
type CommentPost struct {
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

// Comment constraints enforced by the server.
const (
	CommentMinLen = 50
	CommentMaxLen = 300
	RatingMin     = 1
	RatingMax     = 5
)

// AuthData is a transient credential pair used for a single login attempt.
type AuthData struct {
	Login    string `json:"email"`
	Password string `json:"password"`
}

// UserData is returned by the API for an authenticated session.
type UserData struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	IsPro     bool   `json:"isPro"`
	Token     string `json:"token"`
}

// Tokens collects issued access tokens.
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time // access token expiry (for diagnostics)
}

// User represents an account stored on the server. Passwords are never stored in plaintext.
type User struct {
	ID        uuid.UUID // PK
	Email     string    // unique
	Name      string
	AvatarURL string
	IsPro     bool
	PwdHash   []byte // Argon2id(password, SaltAuth)
	SaltAuth  []byte // per-user auth salt
	CreatedAt time.Time
}

// UserData projects the stored user into the API shape.
func (u User) UserData(token string) UserData {
	return UserData{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		IsPro:     u.IsPro,
		Token:     token,
	}
}
