package sso

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, email, password string, hubID int64) (string, error)
	LoginWithToken(ctx context.Context, raw string) (string, error)
	SessionFromToken(raw string) (*SessionClaims, error)
}

// TokenService signs and validates session claims with a process-wide secret.
type TokenService interface {
	SignClaims(claims *SessionClaims) (string, error)
	Validate(raw string) (*SessionClaims, error)
}

// SessionStore is the capability the surrounding session mechanism exposes:
// it keeps the signed token between requests. Storing the same token twice is
// harmless, so Store may be retried after a cancelled bind.
type SessionStore interface {
	Store(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
}

// IdentityRepository is the read contract the core needs from storage. The
// core never writes through it; the admin surface uses the wider Users
// interface instead.
type IdentityRepository interface {
	FindByEmailAndHub(ctx context.Context, email string, hubID int64) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
}

// Notifier is the outbound message sink used by password recovery. Delivery
// is at-most-once and best-effort.
type Notifier interface {
	Send(ctx context.Context, msg RecoveryMessage) error
}

// RecoveryMessage carries the redemption link for one recovery request.
type RecoveryMessage struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	HubID int64  `json:"hub_id"`
	Token string `json:"token"`
	URL   string `json:"url"`
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetSessionDuration() time.Duration
	GetRecoveryDuration() time.Duration
	GetIssuer() string
	GetContextKey() string
	GetTokenLookup() string
	GetAuthScheme() string
	GetBaseURL() string
	GetRejectedRouteKey() string
	GetRejectedRouteDefault() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SSO "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] SSO "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SSO "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SSO "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
