// Package client is a typed HTTP client for the admin API, used by the
// dashboard screens.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"realestate/app/auth"
	"realestate/app/models"
)

// APIError is a non-2xx response. Message is the server's error text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client calls the admin API on behalf of one session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *http.Cookie
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSession sends token in the named session cookie. An empty name uses
// auth.DefaultCookieName.
func WithSession(cookieName, token string) Option {
	return func(c *Client) {
		if cookieName == "" {
			cookieName = auth.DefaultCookieName
		}
		c.session = &http.Cookie{Name: cookieName, Value: token}
	}
}

// New returns a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends body as JSON and decodes a 2xx response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil {
		req.AddCookie(c.session)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// decodeError reads an error body leniently: errorMessage, then error as a
// string, then error as any JSON value, then the status text.
func decodeError(status int, data []byte) *APIError {
	var body struct {
		Error        json.RawMessage `json:"error"`
		ErrorMessage string          `json:"errorMessage"`
	}
	msg := ""
	if err := json.Unmarshal(data, &body); err == nil {
		switch {
		case body.ErrorMessage != "":
			msg = body.ErrorMessage
		case len(body.Error) > 0 && string(body.Error) != "null":
			var s string
			if err := json.Unmarshal(body.Error, &s); err == nil {
				msg = s
			} else {
				msg = string(body.Error)
			}
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Status: status, Message: msg}
}

func pageQuery(path string, page, limit int) string {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// Health checks the server can reach its store.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *Client) ListListings(ctx context.Context, page, limit int) (*models.ListingsResponse, error) {
	var out models.ListingsResponse
	if err := c.do(ctx, http.MethodGet, pageQuery("/api/listings", page, limit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateListing(ctx context.Context, in *models.ListingInput) (*models.Listing, error) {
	var out models.ListingResponse
	if err := c.do(ctx, http.MethodPost, "/api/listings", in, &out); err != nil {
		return nil, err
	}
	return out.Listing, nil
}

func (c *Client) UpdateListing(ctx context.Context, patch *models.ListingPatch) (*models.Listing, error) {
	var out models.ListingResponse
	if err := c.do(ctx, http.MethodPut, "/api/listings", patch, &out); err != nil {
		return nil, err
	}
	return out.Listing, nil
}

func (c *Client) DeleteListing(ctx context.Context, id string) (string, error) {
	var out models.MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/api/listings", &models.DeleteRequest{ID: id}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ListBlogs(ctx context.Context, page, limit int) (*models.BlogsResponse, error) {
	var out models.BlogsResponse
	if err := c.do(ctx, http.MethodGet, pageQuery("/api/blogs", page, limit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBlog(ctx context.Context, in *models.BlogInput) (*models.Blog, error) {
	var out models.BlogResponse
	if err := c.do(ctx, http.MethodPost, "/api/blogs", in, &out); err != nil {
		return nil, err
	}
	return out.Blog, nil
}

func (c *Client) UpdateBlog(ctx context.Context, patch *models.BlogPatch) (*models.Blog, error) {
	var out models.BlogResponse
	if err := c.do(ctx, http.MethodPut, "/api/blogs", patch, &out); err != nil {
		return nil, err
	}
	return out.Blog, nil
}

func (c *Client) DeleteBlog(ctx context.Context, id string) (string, error) {
	var out models.MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/api/blogs", &models.DeleteRequest{ID: id}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ListContacts(ctx context.Context) ([]*models.Contact, error) {
	var out models.ContactsResponse
	if err := c.do(ctx, http.MethodGet, "/api/contact", nil, &out); err != nil {
		return nil, err
	}
	return out.Contacts, nil
}

func (c *Client) CreateContact(ctx context.Context, in *models.ContactInput) (*models.Contact, error) {
	var out models.ContactResponse
	if err := c.do(ctx, http.MethodPost, "/api/contact", in, &out); err != nil {
		return nil, err
	}
	return out.Contact, nil
}

func (c *Client) UpdateContact(ctx context.Context, patch *models.ContactPatch) (*models.Contact, error) {
	var out models.ContactResponse
	if err := c.do(ctx, http.MethodPut, "/api/contact", patch, &out); err != nil {
		return nil, err
	}
	return out.Contact, nil
}

func (c *Client) DeleteContact(ctx context.Context, id string) (string, error) {
	var out models.MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/api/contact", &models.DeleteRequest{ID: id}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
