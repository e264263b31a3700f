package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration, loaded from the environment.
// AUTH_JWT_SECRET is the only hard requirement; a provider is enabled when
// both its client id and secret are set.
type Config struct {
	// JWTSecret signs session tokens. Must be at least 32 bytes.
	JWTSecret string `env:"AUTH_JWT_SECRET,required,notEmpty"`

	Issuer   string        `env:"AUTH_ISSUER" envDefault:"authgate"`
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"24h"`

	DatabaseFile string `env:"AUTH_DATABASE_FILE" envDefault:"authgate.db"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	// ProviderTimeout bounds each outbound provider exchange. The two
	// upstream calls (token, then profile) share one HTTP client with
	// this timeout applied per call.
	ProviderTimeout time.Duration `env:"AUTH_PROVIDER_TIMEOUT" envDefault:"40s"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleCallbackURL  string `env:"GOOGLE_CALLBACK_URL"`

	GitHubClientID     string `env:"GITHUB_CLIENT_ID"`
	GitHubClientSecret string `env:"GITHUB_CLIENT_SECRET"`
	GitHubCallbackURL  string `env:"GITHUB_CALLBACK_URL"`

	OIDCIssuer       string `env:"OIDC_ISSUER"`
	OIDCClientID     string `env:"OIDC_CLIENT_ID"`
	OIDCClientSecret string `env:"OIDC_CLIENT_SECRET"`
	OIDCCallbackURL  string `env:"OIDC_CALLBACK_URL"`
}

// LoadConfig reads the configuration from the environment, failing fast on
// missing required keys so a misconfigured deployment never half-starts.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c Config) googleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func (c Config) githubEnabled() bool {
	return c.GitHubClientID != "" && c.GitHubClientSecret != ""
}

func (c Config) oidcEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != "" && c.OIDCClientSecret != ""
}
