// Package actions turns user intents (submit login, pick a city, open an offer) into
// API requests and store transitions.
package actions

import (
	"context"

	"go.uber.org/zap"

	"github.com/and161185/six-cities/internal/model"
	"github.com/and161185/six-cities/internal/nav"
	"github.com/and161185/six-cities/internal/notify"
	"github.com/and161185/six-cities/internal/store"
	"github.com/and161185/six-cities/internal/validate"
)

// API is the subset of the REST client used by actions.
type API interface {
	Login(ctx context.Context, ad model.AuthData) (model.UserData, error)
	CheckAuth(ctx context.Context) (model.UserData, error)
	Logout(ctx context.Context) error
	Offers(ctx context.Context) (model.Offers, error)
	Offer(ctx context.Context, id int) (model.Offer, error)
	Nearby(ctx context.Context, id int) (model.Offers, error)
	Comments(ctx context.Context, id int) (model.Comments, error)
	PostComment(ctx context.Context, id int, p model.CommentPost) (model.Comment, error)
}

// TokenKeeper persists the session token between runs.
type TokenKeeper interface {
	Save(tok string) error
	Drop() error
}

type nopTokens struct{}

func (nopTokens) Save(string) error { return nil }
func (nopTokens) Drop() error       { return nil }

// Dispatcher runs actions against one store.
type Dispatcher struct {
	store    *store.Store
	api      API
	nav      nav.Navigator
	notifier notify.Notifier
	tokens   TokenKeeper
	validate PasswordValidator
	log      *zap.Logger
}

// PasswordValidator rejects a password with an *errs.ValidationError.
type PasswordValidator func(password string) error

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTokens persists tokens on login and drops them on logout.
func WithTokens(t TokenKeeper) Option { return func(d *Dispatcher) { d.tokens = t } }

// WithValidator replaces the default password policy.
func WithValidator(v PasswordValidator) Option { return func(d *Dispatcher) { d.validate = v } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(d *Dispatcher) { d.log = l } }

// New constructs a Dispatcher.
func New(st *store.Store, api API, nv nav.Navigator, nt notify.Notifier, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:    st,
		api:      api,
		nav:      nv,
		notifier: nt,
		tokens:   nopTokens{},
		validate: validate.Password,
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Store returns the store the dispatcher writes to.
func (d *Dispatcher) Store() *store.Store { return d.store }
