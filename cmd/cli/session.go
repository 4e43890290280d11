package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/and161185/six-cities/internal/model"
	"github.com/and161185/six-cities/internal/store"
	"github.com/and161185/six-cities/internal/view"
)

// login -e <email> -p <password>: sign in and keep the token.
func loginCmd(a *app) *cobra.Command {
	var ad model.AuthData
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if err := a.d.SubmitLogin(ctx, ad); err != nil {
				return err
			}
			u := store.UserData(a.store.State())
			a.printf("Signed in as %s\n", u.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&ad.Login, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&ad.Password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// register -e <email> -p <password> [-n <name>]: create an account and sign in.
func registerCmd(a *app) *cobra.Command {
	var (
		ad   model.AuthData
		name string
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			ud, err := a.client.Register(ctx, ad, name)
			if err != nil {
				return err
			}
			if err := a.tokens.Save(ud.Token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			a.printf("Registered and signed in as %s\n", ud.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&ad.Login, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&ad.Password, "password", "p", "", "password with at least one letter and one digit")
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			err := a.d.Logout(ctx)
			a.printf("Signed out\n")
			return err
		},
	}
}

func statusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the stored token is still accepted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if err := a.d.CheckAuth(ctx); err != nil {
				return err
			}
			s := a.store.State()
			a.printf("Status: %s\n", store.AuthorizationStatus(s))
			if u := store.UserData(s); u != nil {
				a.printf("User: %s <%s>\n", u.Name, u.Email)
			}
			a.printf("City: %s\n", store.CurrentCity(s).Title)
			return nil
		},
	}
}

// suggest renders the sign-in page: a redirect when already authorized,
// otherwise a randomly suggested city.
func suggestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "suggest",
		Aliases: []string{"login-page"},
		Short:   "Show the sign-in page",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if err := a.d.CheckAuth(ctx); err != nil {
				return err
			}
			return a.renderLogin()
		},
	}
}

var errNotSignedIn = errors.New("sign in first: sixcities login -e <email> -p <password>")

func (a *app) renderLogin() error {
	page := view.Login(a.store.State(), a.rng)
	if page.RedirectTo != "" {
		a.printf("Already signed in, redirecting to %s\n", page.RedirectTo)
		return nil
	}
	a.printf("%s\nTry %s: sixcities city %d\n", page.Title, page.SuggestedCity.Title, page.SuggestedCity.ID)
	return nil
}
