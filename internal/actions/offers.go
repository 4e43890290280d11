package actions

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/and161185/six-cities/internal/errs"
	"github.com/and161185/six-cities/internal/model"
	"github.com/and161185/six-cities/internal/nav"
	"github.com/and161185/six-cities/internal/store"
	"github.com/and161185/six-cities/internal/validate"
)

// FetchOffers loads the offers list.
func (d *Dispatcher) FetchOffers(ctx context.Context) error {
	d.store.Dispatch(store.OffersRequested{})
	offers, err := d.api.Offers(ctx)
	if err != nil {
		d.store.Dispatch(store.OffersFailed{})
		d.notifier.Error(fmt.Sprintf("Could not load offers: %v", err))
		return err
	}
	d.store.Dispatch(store.OffersLoaded{Offers: offers})
	return nil
}

// LoadOffer requests the offer, its neighbours and its comments in parallel. A missing
// offer navigates to NotFound. Nearby and comments failures leave those lists empty.
func (d *Dispatcher) LoadOffer(ctx context.Context, id int) error {
	d.store.Dispatch(store.OfferRequested{ID: id})
	d.store.Dispatch(store.NearbyRequested{})
	d.store.Dispatch(store.CommentsRequested{})

	var (
		offer       model.Offer
		nearby      model.Offers
		comments    model.Comments
		nearbyErr   error
		commentsErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		offer, err = d.api.Offer(gctx, id)
		return err
	})
	g.Go(func() error {
		nearby, nearbyErr = d.api.Nearby(gctx, id)
		return nil
	})
	g.Go(func() error {
		comments, commentsErr = d.api.Comments(gctx, id)
		return nil
	})

	if err := g.Wait(); err != nil {
		d.store.Dispatch(store.OfferFailed{})
		d.store.Dispatch(store.NearbyFailed{})
		d.store.Dispatch(store.CommentsFailed{})
		if errors.Is(err, errs.ErrNotFound) {
			d.nav.Navigate(nav.NotFound)
		} else {
			d.notifier.Error(fmt.Sprintf("Could not load offer: %v", err))
		}
		return err
	}

	d.store.Dispatch(store.OfferLoaded{Offer: offer})
	if nearbyErr != nil {
		d.log.Warn("fetch nearby", zap.Int("offer", id), zap.Error(nearbyErr))
		d.store.Dispatch(store.NearbyFailed{})
	} else {
		d.store.Dispatch(store.NearbyLoaded{Offers: nearby})
	}
	if commentsErr != nil {
		d.log.Warn("fetch comments", zap.Int("offer", id), zap.Error(commentsErr))
		d.store.Dispatch(store.CommentsFailed{})
	} else {
		d.store.Dispatch(store.CommentsLoaded{Comments: comments})
	}
	return nil
}

// PostComment submits a review. Unauthorized users are sent to Login.
func (d *Dispatcher) PostComment(ctx context.Context, id int, p model.CommentPost) error {
	if store.AuthorizationStatus(d.store.State()) != model.Auth {
		d.nav.Navigate(nav.Login)
		return errs.ErrUnauthorized
	}
	if err := validate.Comment(p); err != nil {
		d.notifier.Error(err.Error())
		return err
	}
	c, err := d.api.PostComment(ctx, id, p)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			d.store.Dispatch(store.SessionEnded{})
			d.nav.Navigate(nav.Login)
		}
		d.notifier.Error(fmt.Sprintf("Could not post comment: %v", err))
		return err
	}
	d.store.Dispatch(store.CommentPosted{Comment: c})
	return nil
}

// HoverCard highlights an offer card; 0 clears the highlight.
func (d *Dispatcher) HoverCard(id int) {
	d.store.Dispatch(store.SetHoverCard{ID: id})
}
