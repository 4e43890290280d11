// Package api is the HTTP client of the six cities REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/and161185/six-cities/internal/errs"
	"github.com/and161185/six-cities/internal/model"
)

// Client talks to the API rooted at a base URL (e.g. http://localhost:8080/six-cities).
type Client struct {
	base string
	http *http.Client
}

// New constructs a client. src may be nil for anonymous access.
func New(base string, timeout time.Duration, src TokenSource) *Client {
	return &Client{
		base: strings.TrimSuffix(base, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: newTokenRoundTripper(http.DefaultTransport, src),
		},
	}
}

// Login exchanges credentials for the user data and its token.
func (c *Client) Login(ctx context.Context, ad model.AuthData) (model.UserData, error) {
	var out model.UserData
	err := c.do(ctx, "login", http.MethodPost, "/login", ad, &out)
	return out, err
}

// Register creates an account; not part of the public contract, used by dev tooling.
func (c *Client) Register(ctx context.Context, ad model.AuthData, name string) (model.UserData, error) {
	body := struct {
		model.AuthData
		Name string `json:"name"`
	}{ad, name}
	var out model.UserData
	err := c.do(ctx, "register", http.MethodPost, "/register", body, &out)
	return out, err
}

// CheckAuth returns the user owning the current token.
func (c *Client) CheckAuth(ctx context.Context) (model.UserData, error) {
	var out model.UserData
	err := c.do(ctx, "check auth", http.MethodGet, "/login", nil, &out)
	return out, err
}

// Logout invalidates the session on the server side.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "logout", http.MethodDelete, "/logout", nil, nil)
}

// Offers lists all offers.
func (c *Client) Offers(ctx context.Context) (model.Offers, error) {
	var out model.Offers
	err := c.do(ctx, "fetch offers", http.MethodGet, "/offers", nil, &out)
	return out, err
}

// Offer fetches one offer.
func (c *Client) Offer(ctx context.Context, id int) (model.Offer, error) {
	var out model.Offer
	err := c.do(ctx, "fetch offer", http.MethodGet, "/offers/"+strconv.Itoa(id), nil, &out)
	return out, err
}

// Nearby lists offers close to the given one.
func (c *Client) Nearby(ctx context.Context, id int) (model.Offers, error) {
	var out model.Offers
	err := c.do(ctx, "fetch nearby", http.MethodGet, "/offers/"+strconv.Itoa(id)+"/nearby", nil, &out)
	return out, err
}

// Comments lists the comments of an offer.
func (c *Client) Comments(ctx context.Context, id int) (model.Comments, error) {
	var out model.Comments
	err := c.do(ctx, "fetch comments", http.MethodGet, "/comments/"+strconv.Itoa(id), nil, &out)
	return out, err
}

// PostComment adds a comment to an offer and returns it as stored.
func (c *Client) PostComment(ctx context.Context, id int, p model.CommentPost) (model.Comment, error) {
	var out model.Comment
	err := c.do(ctx, "post comment", http.MethodPost, "/comments/"+strconv.Itoa(id), p, &out)
	return out, err
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return &errs.RequestError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &errs.RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&eb)
		return &errs.RequestError{Op: op, Status: resp.StatusCode, Msg: eb.Error}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &errs.RequestError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
