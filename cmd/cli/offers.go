package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/and161185/six-cities/internal/model"
	"github.com/and161185/six-cities/internal/nav"
	"github.com/and161185/six-cities/internal/store"
	"github.com/and161185/six-cities/internal/view"
)

var sortFlagNames = map[view.SortOption]string{
	view.SortPopular:        "popular",
	view.SortPriceLowToHigh: "price-asc",
	view.SortPriceHighToLow: "price-desc",
	view.SortTopRatedFirst:  "rating",
}

func parseSort(name string) (view.SortOption, bool) {
	for _, o := range view.SortOptions {
		if sortFlagNames[o] == name {
			return o, true
		}
	}
	return "", false
}

// sortUsage lists the sort flag values in menu order.
func sortUsage() string {
	parts := make([]string, 0, len(view.SortOptions))
	for _, o := range view.SortOptions {
		parts = append(parts, fmt.Sprintf("%s (%s)", sortFlagNames[o], o))
	}
	return strings.Join(parts, ", ")
}

// findCity accepts a city id or a case-insensitive title.
func findCity(arg string) (model.City, bool) {
	if id, err := strconv.Atoi(arg); err == nil {
		return model.CityByID(id)
	}
	for _, c := range model.Cities {
		if strings.EqualFold(c.Title, arg) {
			return c, true
		}
	}
	return model.City{}, false
}

func citiesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List the cities",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			cur := store.CurrentCity(a.store.State())
			for _, c := range model.Cities {
				mark := " "
				if c.ID == cur.ID {
					mark = "*"
				}
				a.printf("%s %d %s\n", mark, c.ID, c.Title)
			}
		},
	}
}

// city <id|name>: make a city active for later runs.
func cityCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "city <id|name>",
		Short: "Select the active city",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c, ok := findCity(args[0])
			if !ok {
				return fmt.Errorf("unknown city %q", args[0])
			}
			a.d.SelectCity(c.ID)
			cur := store.CurrentCity(a.store.State())
			if err := savePrefs(a.home, prefs{CityID: cur.ID}); err != nil {
				return fmt.Errorf("save prefs: %w", err)
			}
			a.printf("City: %s (%s)\n", cur.Title, a.history.Current())
			return nil
		},
	}
}

func offersCmd(a *app) *cobra.Command {
	var (
		city, sortBy string
		highlight    int
		asJSON       bool
	)
	cmd := &cobra.Command{
		Use:   "offers",
		Short: "List offers of the active city",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opt, ok := parseSort(sortBy)
			if !ok {
				return fmt.Errorf("unknown sort %q: use %s", sortBy, sortUsage())
			}
			if city != "" {
				c, ok := findCity(city)
				if !ok {
					return fmt.Errorf("unknown city %q", city)
				}
				a.store.Dispatch(store.ChangeCity{CityID: c.ID})
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if err := a.d.FetchOffers(ctx); err != nil {
				return err
			}
			a.d.HoverCard(highlight)
			page := view.Main(a.store.State(), opt)
			if asJSON {
				return a.printJSON(page.Offers)
			}
			a.renderMain(page)
			return nil
		},
	}
	cmd.Flags().StringVarP(&city, "city", "c", "", "city id or name (default: active city)")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", "popular", "sort order: "+sortUsage())
	cmd.Flags().IntVar(&highlight, "highlight", 0, "mark the offer with this id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (a *app) renderMain(p view.MainPage) {
	if p.Empty {
		a.printf("No places to stay available in %s\n", p.City.Title)
		return
	}
	a.printf("%d places to stay in %s (%s)\n", p.PlacesCount, p.City.Title, p.Sort)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tPRICE\tRATING\tTYPE\tTITLE")
	for _, o := range p.Offers {
		title := o.Title
		if o.IsPremium {
			title = "[Premium] " + title
		}
		if o.ID == p.HoveredID {
			title = "> " + title
		}
		_, _ = fmt.Fprintf(tw, "%d\t€%d\t%.1f\t%s\t%s\n", o.ID, o.Price, o.Rating, o.Type, title)
	}
	_ = tw.Flush()
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("bad offer id %q", arg)
	}
	return id, nil
}

var errNotFound = errors.New("not found")

func offerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "offer <id>",
		Short: "Show an offer with nearby places and reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			return a.showOffer(ctx, id)
		},
	}
}

func (a *app) renderNotFound() error {
	p := view.NotFound()
	a.printf("%s\n%s: %s\n", p.Heading, p.LinkText, p.LinkTo)
	return errNotFound
}

func (a *app) renderOffer(p view.OfferPage) {
	o := p.Offer
	a.printf("%s\n", o.Title)
	a.printf("%s in %s, €%d/night, rating %.1f\n", o.Type, o.City.Title, o.Price, o.Rating)
	a.printf("%d bedrooms, max %d adults\n", o.Bedrooms, o.MaxAdults)
	if len(o.Goods) > 0 {
		a.printf("Inside: %s\n", strings.Join(o.Goods, ", "))
	}
	a.printf("Host: %s", o.Host.Name)
	if o.Host.IsPro {
		a.printf(" (Pro)")
	}
	a.printf("\n%s\n", o.Description)

	a.printf("\nReviews · %d\n", len(p.Comments))
	for _, c := range p.Comments {
		a.printf("  %s %s ★%d\n    %s\n", c.Date.Format("January 2006"), c.User.Name, c.Rating, c.Comment)
	}
	if len(p.Nearby) > 0 {
		a.printf("\nOther places in the neighbourhood\n")
		for _, n := range p.Nearby {
			a.printf("  %d  €%d  %s\n", n.ID, n.Price, n.Title)
		}
	}
	if !p.CanComment {
		a.printf("\nSign in to leave a review\n")
	}
}

func commentCmd(a *app) *cobra.Command {
	var p model.CommentPost
	cmd := &cobra.Command{
		Use:   "comment <id>",
		Short: "Review an offer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if err := a.d.CheckAuth(ctx); err != nil {
				return err
			}
			if err := a.d.PostComment(ctx, id, p); err != nil {
				if a.history.Current() == nav.Login {
					return errNotSignedIn
				}
				return err
			}
			a.printf("Review posted\n")
			return nil
		},
	}
	cmd.Flags().IntVarP(&p.Rating, "rating", "r", 0, "rating from 1 to 5")
	cmd.Flags().StringVarP(&p.Comment, "text", "t", "", "review text, 50 to 300 characters")
	_ = cmd.MarkFlagRequired("rating")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func statsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Price statistics per city",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if err := a.d.FetchOffers(ctx); err != nil {
				return err
			}
			st := view.PriceStats(store.Offers(a.store.State()))
			if asJSON {
				return a.printJSON(st)
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "CITY\tOFFERS\tMEAN\tMEDIAN\tRATING")
			for _, s := range st {
				_, _ = fmt.Fprintf(tw, "%s\t%d\t%.0f\t%.0f\t%.2f\n", s.City, s.Offers, s.MeanPrice, s.MedianPrice, s.MeanRating)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// open <path>: render whatever page a path resolves to.
func openCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Open a page by path, e.g. /offer/3",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route, id := nav.Resolve(args[0])
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			switch route {
			case nav.Main:
				if err := a.d.FetchOffers(ctx); err != nil {
					return err
				}
				a.renderMain(view.Main(a.store.State(), view.SortPopular))
				return nil
			case nav.Offer:
				return a.showOffer(ctx, id)
			case nav.Login:
				if err := a.d.CheckAuth(ctx); err != nil {
					return err
				}
				return a.renderLogin()
			case nav.Favorites:
				if err := a.d.CheckAuth(ctx); err != nil {
					return err
				}
				if store.AuthorizationStatus(a.store.State()) != model.Auth {
					return errNotSignedIn
				}
				a.printf("Nothing yet saved\n")
				return nil
			}
			return a.renderNotFound()
		},
	}
}
