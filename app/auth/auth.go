// Package auth resolves the signed-in user of a request. Anything that is
// not a valid session is ErrUnauthenticated; callers never see why.
package auth

import (
	"context"
	"errors"
	"net/http"
)

// ErrUnauthenticated is returned when a request carries no valid session.
var ErrUnauthenticated = errors.New("unauthenticated")

// User is the identity behind a session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// Authenticator resolves the current user of r.
type Authenticator interface {
	Authenticate(r *http.Request) (*User, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(r *http.Request) (*User, error)

func (f AuthenticatorFunc) Authenticate(r *http.Request) (*User, error) {
	return f(r)
}

// StaticAuthenticator accepts every request as the same user. It backs
// auth mode "none" for local runs.
type StaticAuthenticator struct {
	User User
}

func (a StaticAuthenticator) Authenticate(r *http.Request) (*User, error) {
	u := a.User
	return &u, nil
}

type contextKey struct{}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// UserFromContext returns the user stored by WithUser.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextKey{}).(*User)
	return u, ok && u != nil
}
