// Package service contains application services for accounts, offers and comments.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgcrypto "github.com/and161185/six-cities/internal/crypto"
	"github.com/and161185/six-cities/internal/errs"
	"github.com/and161185/six-cities/internal/limiter"
	"github.com/and161185/six-cities/internal/model"
	"github.com/and161185/six-cities/internal/repository"
	"github.com/and161185/six-cities/internal/validate"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultAvatar is assigned to accounts registered without one.
const DefaultAvatar = "img/avatar.svg"

// AuthService defines account and session operations.
type AuthService interface {
	// Register creates a new account with a hashed password.
	Register(ctx context.Context, email, password, name string) (model.User, error)
	// LoginWithIP applies rate limiting and authenticates the user.
	LoginWithIP(ctx context.Context, email, password, ip string) (model.Tokens, model.User, error)
	// UserFromToken verifies an access token and loads its user.
	UserFromToken(ctx context.Context, token string) (model.User, error)
}

type AuthServiceImpl struct {
	users     repository.UserRepository
	signKey   []byte
	accessTTL time.Duration
	lim       limiter.Limiter
}

var _ AuthService = (*AuthServiceImpl)(nil)

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, signKey []byte, accessTTL time.Duration, lim limiter.Limiter) *AuthServiceImpl {
	if lim == nil {
		lim = limiter.Nop{}
	}
	return &AuthServiceImpl{users: users, signKey: signKey, accessTTL: accessTTL, lim: lim}
}

// Register creates a new user record with a per-user salt.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, name string) (model.User, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return model.User{}, &errs.ValidationError{Field: "email", Msg: "must be a valid address"}
	}
	if err := validate.Password(password); err != nil {
		return model.User{}, err
	}
	if name = strings.TrimSpace(name); name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	uid, err := uuid.NewV4()
	if err != nil {
		return model.User{}, err
	}
	hash, salt, err := pkgcrypto.NewPasswordHash(password)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{
		ID:        uid,
		Email:     email,
		Name:      name,
		AvatarURL: DefaultAvatar,
		PwdHash:   hash,
		SaltAuth:  salt,
		CreatedAt: time.Now(),
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// LoginWithIP authenticates with rate limiting by (email, ip).
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, email, password, ip string) (model.Tokens, model.User, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return model.Tokens{}, model.User{}, fmt.Errorf("limiter: %w", err)
	}
	if !allowed {
		return model.Tokens{}, model.User{}, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return model.Tokens{}, model.User{}, err
	}
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.SaltAuth, u.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return model.Tokens{}, model.User{}, errs.ErrRateLimited
		}
		// unknown email and wrong password look the same
		return model.Tokens{}, model.User{}, errs.ErrUnauthorized
	}

	_ = s.lim.Success(ctx, email, ipHash)

	access, exp, err := s.issueAccessToken(u.ID)
	if err != nil {
		return model.Tokens{}, model.User{}, err
	}
	return model.Tokens{AccessToken: access, ExpiresAt: exp}, *u, nil
}

// UserFromToken verifies an HS256 token and returns the user named by its subject.
func (s *AuthServiceImpl) UserFromToken(ctx context.Context, token string) (model.User, error) {
	id, err := s.ParseToken(token)
	if err != nil {
		return model.User{}, err
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.User{}, errs.ErrUnauthorized
		}
		return model.User{}, err
	}
	return *u, nil
}

// ParseToken verifies signature and expiry and returns the subject as a user id.
func (s *AuthServiceImpl) ParseToken(token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, errs.ErrUnauthorized
	}
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.signKey, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil || !parsed.Valid {
		return uuid.Nil, errs.ErrUnauthorized
	}
	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return uuid.Nil, errs.ErrUnauthorized
	}
	return id, nil
}

// issueAccessToken creates a signed HS256 JWT for the given subject.
func (s *AuthServiceImpl) issueAccessToken(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.accessTTL)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
	return signed, exp, err
}
