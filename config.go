package sso

import (
	"time"

	"github.com/caarlos0/env/v11"
	goerrors "github.com/goliatone/go-errors"
)

// EnvConfig is the environment-backed Config implementation. The signing
// secret is read once at startup and never mutated at runtime.
type EnvConfig struct {
	SigningKey       string        `env:"SSO_SIGNING_KEY,required,notEmpty"`
	SessionDuration  time.Duration `env:"SSO_SESSION_DURATION" envDefault:"168h"`
	RecoveryDuration time.Duration `env:"SSO_RECOVERY_DURATION" envDefault:"24h"`
	Issuer           string        `env:"SSO_ISSUER" envDefault:""`
	ContextKey       string        `env:"SSO_CONTEXT_KEY" envDefault:"sso_session"`
	TokenLookup      string        `env:"SSO_TOKEN_LOOKUP" envDefault:"cookie:sso_session"`
	AuthScheme       string        `env:"SSO_AUTH_SCHEME" envDefault:"Bearer"`
	BaseURL          string        `env:"SSO_BASE_URL" envDefault:"http://localhost:3000"`
	RejectedKey      string        `env:"SSO_REJECTED_ROUTE_KEY" envDefault:"rejected_route"`
	RejectedDefault  string        `env:"SSO_REJECTED_ROUTE_DEFAULT" envDefault:"/"`
	RedisAddr        string        `env:"SSO_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisChannel     string        `env:"SSO_REDIS_CHANNEL" envDefault:"sso.recovery"`
	DatabaseDSN      string        `env:"SSO_DATABASE_DSN" envDefault:"file::memory:?cache=shared"`
}

// LoadConfig parses the configuration from the environment.
func LoadConfig() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to parse environment configuration")
	}
	return cfg, nil
}

func (c *EnvConfig) GetSigningKey() string              { return c.SigningKey }
func (c *EnvConfig) GetSessionDuration() time.Duration  { return c.SessionDuration }
func (c *EnvConfig) GetRecoveryDuration() time.Duration { return c.RecoveryDuration }
func (c *EnvConfig) GetIssuer() string                  { return c.Issuer }
func (c *EnvConfig) GetContextKey() string              { return c.ContextKey }
func (c *EnvConfig) GetTokenLookup() string             { return c.TokenLookup }
func (c *EnvConfig) GetAuthScheme() string              { return c.AuthScheme }
func (c *EnvConfig) GetBaseURL() string                 { return c.BaseURL }
func (c *EnvConfig) GetRejectedRouteKey() string        { return c.RejectedKey }
func (c *EnvConfig) GetRejectedRouteDefault() string    { return c.RejectedDefault }

var _ Config = (*EnvConfig)(nil)
