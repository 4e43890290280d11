package actions

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/and161185/six-cities/internal/errs"
	"github.com/and161185/six-cities/internal/model"
	"github.com/and161185/six-cities/internal/nav"
	"github.com/and161185/six-cities/internal/store"
)

// SubmitLogin validates ad, sends exactly one login request and, on success, marks the
// session authorized and navigates to Main. Failures are reported to the notifier and
// returned; the authorization status is left as it was.
//
// Concurrent submissions are not deduplicated.
func (d *Dispatcher) SubmitLogin(ctx context.Context, ad model.AuthData) error {
	if err := d.validate(ad.Password); err != nil {
		var ve *errs.ValidationError
		if errors.As(err, &ve) {
			d.notifier.Error(ve.Msg)
		} else {
			d.notifier.Error(err.Error())
		}
		return err
	}

	ud, err := d.api.Login(ctx, ad)
	if err != nil {
		d.log.Warn("login failed", zap.String("login", ad.Login), zap.Error(err))
		d.notifier.Error(loginFailureMsg(err))
		return err
	}

	if err := d.tokens.Save(ud.Token); err != nil {
		// The session is valid for this run even if it cannot be persisted.
		d.log.Warn("save token", zap.Error(err))
	}
	d.store.Dispatch(store.SessionStarted{User: ud})
	d.nav.Navigate(nav.Main)
	return nil
}

func loginFailureMsg(err error) string {
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		return "Invalid email or password"
	case errors.Is(err, errs.ErrRateLimited):
		return "Too many attempts, try again later"
	default:
		return fmt.Sprintf("Sign in failed: %v", err)
	}
}

// CheckAuth asks the server whether the stored token is still valid.
func (d *Dispatcher) CheckAuth(ctx context.Context) error {
	ud, err := d.api.CheckAuth(ctx)
	if err != nil {
		d.store.Dispatch(store.SessionEnded{})
		if errors.Is(err, errs.ErrUnauthorized) {
			return nil
		}
		return err
	}
	d.store.Dispatch(store.SessionStarted{User: ud})
	return nil
}

// Logout ends the session. Local state is cleared even when the request fails.
func (d *Dispatcher) Logout(ctx context.Context) error {
	err := d.api.Logout(ctx)
	if derr := d.tokens.Drop(); derr != nil {
		d.log.Warn("drop token", zap.Error(derr))
	}
	d.store.Dispatch(store.SessionEnded{})
	if err != nil {
		d.log.Warn("logout request failed", zap.Error(err))
	}
	return err
}
