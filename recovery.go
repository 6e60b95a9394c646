package sso

import (
	"context"
	"fmt"
	"net/url"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// PasswordRecovery issues bounded-lifetime recovery tokens and hands the
// redemption link to the notification sink. Issued tokens are not stored:
// revocation before natural expiry is impossible, redemption is bounded only
// by the token lifetime and by the identity re-read the session authority
// performs on redemption.
type PasswordRecovery struct {
	repo         IdentityRepository
	tokenService TokenService
	notifier     Notifier
	baseURL      string
	recoveryTTL  time.Duration
	logger       Logger
	activitySink ActivitySink
}

// NewPasswordRecovery creates the recovery orchestrator. The base URL is the
// scheme and host the redemption link is rooted at.
func NewPasswordRecovery(repo IdentityRepository, tokenService TokenService, notifier Notifier, cfg Config) *PasswordRecovery {
	return &PasswordRecovery{
		repo:         repo,
		tokenService: tokenService,
		notifier:     notifier,
		baseURL:      cfg.GetBaseURL(),
		recoveryTTL:  cfg.GetRecoveryDuration(),
		logger:       defLogger{},
		activitySink: noopActivitySink{},
	}
}

func (r *PasswordRecovery) WithLogger(logger Logger) *PasswordRecovery {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// WithActivitySink configures an ActivitySink for recovery events.
func (r *PasswordRecovery) WithActivitySink(sink ActivitySink) *PasswordRecovery {
	r.activitySink = normalizeActivitySink(sink)
	return r
}

// Recover resolves the identity, issues a recovery token, and publishes the
// redemption link. An unknown (email, hub) pair returns ErrIdentityNotFound;
// whether the boundary surfaces that distinctly or hides it behind an
// "email sent" page is its policy, not ours.
//
// The token is returned alongside any publish error: a failed publish is
// reported but does not invalidate the issued token.
func (r *PasswordRecovery) Recover(ctx context.Context, email string, hubID int64) (string, error) {
	user, err := r.repo.FindByEmailAndHub(ctx, email, hubID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return "", ErrIdentityNotFound
		}
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve identity during recovery")
	}

	claims := BuildClaims(user, r.recoveryTTL)

	token, err := r.tokenService.SignClaims(claims)
	if err != nil {
		return "", err
	}

	r.recordActivity(ctx, claims)

	msg := RecoveryMessage{
		Email: claims.Email,
		Name:  user.Name,
		HubID: user.HubID,
		Token: token,
		URL:   r.redemptionURL(token),
	}

	if err := r.notifier.Send(ctx, msg); err != nil {
		r.logger.Warn("recovery notification publish failed", "error", err, "email", claims.Email)
		return token, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to publish recovery notification")
	}

	return token, nil
}

func (r *PasswordRecovery) redemptionURL(token string) string {
	return fmt.Sprintf("%s/auth/login?token=%s", r.baseURL, url.QueryEscape(token))
}

func (r *PasswordRecovery) recordActivity(ctx context.Context, claims *SessionClaims) {
	event := ActivityEvent{
		EventType: ActivityEventRecoveryRequested,
		Actor: ActorRef{
			ID:   claims.Subject,
			Type: "user",
		},
		UserID:     claims.Subject,
		HubID:      claims.HubID,
		Metadata:   map[string]any{"email": claims.Email},
		OccurredAt: time.Now(),
	}

	if err := normalizeActivitySink(r.activitySink).Record(ctx, event); err != nil {
		r.logger.Warn("activity sink error during recovery: %v", err)
	}
}
