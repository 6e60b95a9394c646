package sso

import (
	"context"
	"net/http"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// RouteAuthenticator binds the session authority to the HTTP transport: it
// turns login payloads into session cookies, redeems tokenized login links,
// and clears sessions on logout.
type RouteAuthenticator struct {
	auth             Authenticator
	cfg              Config
	cookieDuration   time.Duration
	Logger           Logger
	AuthErrorHandler func(c router.Context, err error) error
	ErrorHandler     func(c router.Context, err error) error
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	cookieDuration := 24 * time.Hour
	if cfg.GetSessionDuration() > 0 {
		cookieDuration = cfg.GetSessionDuration()
	}

	a := &RouteAuthenticator{
		cfg:            cfg,
		auth:           auther,
		Logger:         defLogger{},
		cookieDuration: cookieDuration,
	}

	a.ErrorHandler = a.defaultErrHandler
	a.AuthErrorHandler = a.defaultAuthErrHandler

	return a, nil
}

func (a RouteAuthenticator) GetCookieDuration() time.Duration {
	return a.cookieDuration
}

// Login authenticates the payload and binds the resulting token to the
// session cookie.
func (a *RouteAuthenticator) Login(ctx router.Context, payload LoginRequest) error {
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload")
	}

	token, err := a.auth.Login(ctx.Context(), payload.Email, payload.Password, payload.HubID)
	if err != nil {
		a.Logger.Error("Login error: %s", err)
		return err
	}

	return a.Session(ctx).Store(ctx.Context(), token)
}

// TokenLogin redeems a tokenized login link (the recovery path) for a fresh
// session. Any decode failure is an InvalidCredentials-equivalent outcome.
func (a *RouteAuthenticator) TokenLogin(ctx router.Context) error {
	raw := ctx.Query("token", "")
	if raw == "" {
		return ErrInvalidCredentials
	}

	token, err := a.auth.LoginWithToken(ctx.Context(), raw)
	if err != nil {
		a.Logger.Error("TokenLogin error: %s", err)
		return err
	}

	return a.Session(ctx).Store(ctx.Context(), token)
}

func (a *RouteAuthenticator) Logout(ctx router.Context) {
	a.cookieDel(ctx, a.cfg.GetContextKey())
}

// Session returns the cookie-backed SessionStore bound to this request.
func (a *RouteAuthenticator) Session(ctx router.Context) SessionStore {
	return &cookieSession{
		ctx:  ctx,
		name: a.cfg.GetContextKey(),
		ttl:  a.cookieDuration,
	}
}

func (a *RouteAuthenticator) GetRedirect(ctx router.Context, def ...string) string {
	rejectedRoute := a.cfg.GetRejectedRouteKey()
	r := ctx.Cookies(rejectedRoute)
	if r == "" {
		return def[0]
	}
	a.cookieDel(ctx, rejectedRoute)
	return r
}

func (a *RouteAuthenticator) GetRedirectOrDefault(ctx router.Context) string {
	rejectedRoute := a.cfg.GetRejectedRouteKey()
	refererHeader := string(ctx.Referer())

	r := ctx.Cookies(rejectedRoute, refererHeader)
	if r == "" {
		r = a.cfg.GetRejectedRouteDefault()
	}
	a.cookieDel(ctx, rejectedRoute)
	return r
}

func (a *RouteAuthenticator) SetRedirect(ctx router.Context) {
	rejectedRoute := a.cfg.GetRejectedRouteKey()

	a.Logger.Info("Setting redirect cookie", "key", rejectedRoute, "path", ctx.OriginalURL())

	ctx.Cookie(&router.Cookie{
		Name:     rejectedRoute,
		Value:    ctx.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) cookieDel(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) defaultAuthErrHandler(c router.Context, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryAuth, "An unexpected authentication error").
			WithCode(goerrors.CodeUnauthorized)
	}

	a.Logger.Info(
		"Authentication error, redirecting to login",
		"error", richErr.Message,
		"text_code", richErr.TextCode,
		"path", c.OriginalURL(),
	)

	a.SetRedirect(c)

	statusCode := http.StatusSeeOther
	if c.Method() == string(router.GET) {
		statusCode = http.StatusFound
	}
	return c.Redirect("/auth/login", statusCode)
}

// defaultErrHandler keeps unauthenticated and unauthorized outcomes distinct
// on the wire: credential/token failures go through the auth handler (401 or
// login redirect), policy denials answer 403 directly.
func (a *RouteAuthenticator) defaultErrHandler(c router.Context, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected server error occurred").
			WithCode(goerrors.CodeInternal)
	}

	a.Logger.Info(
		"Middleware error handler",
		"error", richErr.Message,
		"category", richErr.Category,
	)

	switch richErr.Category {
	case goerrors.CategoryAuth:
		return a.AuthErrorHandler(c, richErr)
	case goerrors.CategoryAuthz:
		return c.JSON(router.StatusForbidden, map[string]any{
			"error":     richErr.Message,
			"text_code": richErr.TextCode,
		})
	default:
		return c.JSON(richErr.Code, map[string]any{
			"error": richErr.Message,
		})
	}
}

// cookieSession is the SessionStore the HTTP transport provides: the token
// rides an HTTP-only cookie. Storing the same token again just refreshes the
// cookie, so a retried bind is harmless.
type cookieSession struct {
	ctx  router.Context
	name string
	ttl  time.Duration
}

func (s *cookieSession) Store(_ context.Context, token string) error {
	s.ctx.Cookie(&router.Cookie{
		Name:     s.name,
		Value:    token,
		Expires:  time.Now().Add(s.ttl),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
	return nil
}

func (s *cookieSession) Load(_ context.Context) (string, error) {
	token := s.ctx.Cookies(s.name)
	if token == "" {
		return "", ErrUnableToFindSession
	}
	return token, nil
}

var _ SessionStore = (*cookieSession)(nil)
