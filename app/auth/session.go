package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultCookieName is the session cookie read when none is configured.
const DefaultCookieName = "sb-access-token"

// base64Prefix marks a cookie holding a base64url JSON session.
const base64Prefix = "base64-"

type sessionClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// CookieAuthenticator verifies HMAC-signed session tokens found in the
// session cookie, its numbered chunks, or a Bearer header.
type CookieAuthenticator struct {
	CookieName string
	Secret     []byte
	// Now is the clock used for expiry checks. nil means time.Now.
	Now func() time.Time
}

// NewCookieAuthenticator returns a CookieAuthenticator for cookieName
// verifying with secret.
func NewCookieAuthenticator(cookieName string, secret []byte) *CookieAuthenticator {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &CookieAuthenticator{CookieName: cookieName, Secret: secret}
}

func (a *CookieAuthenticator) Authenticate(r *http.Request) (*User, error) {
	raw := a.sessionValue(r)
	if raw == "" {
		return nil, ErrUnauthenticated
	}
	token, err := accessToken(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return a.verify(token)
}

// sessionValue finds the raw session in the request. Large sessions are
// split over name.0, name.1, ... cookies.
func (a *CookieAuthenticator) sessionValue(r *http.Request) string {
	if c, err := r.Cookie(a.CookieName); err == nil && c.Value != "" {
		return c.Value
	}

	chunks := map[int]string{}
	prefix := a.CookieName + "."
	for _, c := range r.Cookies() {
		if !strings.HasPrefix(c.Name, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(c.Name, prefix))
		if err != nil || n < 0 {
			continue
		}
		chunks[n] = c.Value
	}
	if len(chunks) > 0 {
		keys := make([]int, 0, len(chunks))
		for k := range chunks {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		var b strings.Builder
		for i, k := range keys {
			if k != i {
				return ""
			}
			b.WriteString(chunks[k])
		}
		return b.String()
	}

	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// accessToken extracts the JWT from a raw session value. The value is the
// token itself, or a JSON session (optionally base64url encoded) holding
// access_token, or a JSON array whose first element is the token.
func accessToken(raw string) (string, error) {
	if strings.HasPrefix(raw, base64Prefix) {
		enc := strings.TrimPrefix(raw, base64Prefix)
		data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(enc, "="))
		if err != nil {
			return "", fmt.Errorf("decode session: %w", err)
		}
		raw = string(data)
	}

	trimmed := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(trimmed, "{"):
		var s struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
			return "", fmt.Errorf("parse session: %w", err)
		}
		if s.AccessToken == "" {
			return "", fmt.Errorf("session has no access token")
		}
		return s.AccessToken, nil
	case strings.HasPrefix(trimmed, "["):
		var parts []*string
		if err := json.Unmarshal([]byte(trimmed), &parts); err != nil {
			return "", fmt.Errorf("parse session: %w", err)
		}
		if len(parts) == 0 || parts[0] == nil || *parts[0] == "" {
			return "", fmt.Errorf("session has no access token")
		}
		return *parts[0], nil
	}
	return trimmed, nil
}

func (a *CookieAuthenticator) verify(tokenStr string) (*User, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
	}
	if a.Now != nil {
		opts = append(opts, jwt.WithTimeFunc(a.Now))
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.Secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}
	return &User{ID: claims.Subject, Email: claims.Email}, nil
}

// SignSession issues a token for u valid for ttl. It is used by the dev
// tooling and tests; production tokens come from the identity provider.
func SignSession(secret []byte, u User, ttl time.Duration, now time.Time) (string, error) {
	claims := sessionClaims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
