package sso

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Auther is the session authority: it resolves credentials to identities,
// issues session tokens, and redeems previously issued tokens for fresh
// sessions. It holds no per-request state; one value serves concurrent
// requests.
type Auther struct {
	repo         IdentityRepository
	tokenService TokenService
	sessionTTL   time.Duration
	logger       Logger
	activitySink ActivitySink
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(repo IdentityRepository, cfg Config) *Auther {
	tokenService := NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetIssuer(),
		defLogger{},
	)

	return &Auther{
		repo:         repo,
		tokenService: tokenService,
		sessionTTL:   cfg.GetSessionDuration(),
		logger:       defLogger{},
		activitySink: noopActivitySink{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (s *Auther) WithActivitySink(sink ActivitySink) *Auther {
	s.activitySink = normalizeActivitySink(sink)
	return s
}

// WithTokenService overrides the token service, mainly for tests that need
// control over the signing secret.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		s.tokenService = ts
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login authenticates the credential pair against the given hub and returns
// a signed session token. A lookup miss and a password mismatch both return
// ErrInvalidCredentials with no distinguishing signal.
func (s *Auther) Login(ctx context.Context, email, password string, hubID int64) (string, error) {
	user, err := s.repo.FindByEmailAndHub(ctx, email, hubID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			s.emitAuthEvent(ctx, ActivityEventLoginFailure, ActorRef{Type: "unknown"}, "", hubID, map[string]any{
				"email": email,
			})
			return "", ErrInvalidCredentials
		}
		s.logger.Error("Login identity lookup error", "error", err)
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve identity during login")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		s.emitAuthEvent(ctx, ActivityEventLoginFailure, s.actorFromUser(user), claimSubject(user), hubID, map[string]any{
			"email": email,
		})
		return "", ErrInvalidCredentials
	}

	claims := BuildClaims(user, s.sessionTTL)

	token, err := s.tokenService.SignClaims(claims)
	if err != nil {
		s.logger.Error("Login token signing error", "error", err)
		return "", err
	}

	s.emitAuthEvent(ctx, ActivityEventLoginSuccess, s.actorFromUser(user), claims.Subject, hubID, map[string]any{
		"email": claims.Email,
	})

	return token, nil
}

// LoginWithToken redeems a previously issued token (session or recovery) for
// a fresh session token. The identity is re-read from storage before
// issuance so a deleted account cannot authenticate through an old token,
// and the expiry is always recomputed as now plus the session lifetime,
// never copied from the incoming token.
func (s *Auther) LoginWithToken(ctx context.Context, raw string) (string, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Warn("LoginWithToken validation failed", "error", err)
		s.emitAuthEvent(ctx, ActivityEventReissueFailure, ActorRef{Type: "unknown"}, "", 0, map[string]any{
			"error": err.Error(),
		})
		return "", ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmailAndHub(ctx, claims.Email, claims.HubID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			s.emitAuthEvent(ctx, ActivityEventReissueFailure, ActorRef{Type: "unknown"}, claims.Subject, claims.HubID, nil)
			return "", ErrInvalidCredentials
		}
		s.logger.Error("LoginWithToken identity lookup error", "error", err)
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve identity during token login")
	}

	fresh := BuildClaims(user, s.sessionTTL)

	token, err := s.tokenService.SignClaims(fresh)
	if err != nil {
		s.logger.Error("LoginWithToken token signing error", "error", err)
		return "", err
	}

	s.emitAuthEvent(ctx, ActivityEventReissueSuccess, s.actorFromUser(user), fresh.Subject, fresh.HubID, nil)

	return token, nil
}

// SessionFromToken validates a presented token and returns its claims.
func (s *Auther) SessionFromToken(raw string) (*SessionClaims, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Warn("SessionFromToken validation failed", "error", err)
		return nil, err
	}

	return claims, nil
}

func (s *Auther) emitAuthEvent(ctx context.Context, eventType ActivityEventType, actor ActorRef, userID string, hubID int64, metadata map[string]any) {
	sink := normalizeActivitySink(s.activitySink)
	event := ActivityEvent{
		EventType: eventType,
		Actor:     actor,
		UserID:    userID,
		HubID:     hubID,
		Metadata:  metadata,
	}

	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	if err := sink.Record(ctx, event); err != nil {
		s.logger.Warn("activity sink record error: %v", err)
	}
}

func (s *Auther) actorFromUser(user *User) ActorRef {
	if user == nil {
		return ActorRef{Type: "unknown"}
	}

	return ActorRef{
		ID:   claimSubject(user),
		Type: "user",
	}
}

var _ Authenticator = (*Auther)(nil)
