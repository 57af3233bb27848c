package session

import "context"

// Store maps opaque session tokens to user ids. Tokens expire server-side.
type Store interface {
	Create(ctx context.Context, userID uint) (string, error)
	UserID(ctx context.Context, token string) (uint, bool, error)
	Destroy(ctx context.Context, token string) error
}

// CookieName is the cookie the HTTP layer reads the token from.
const CookieName = "session"
