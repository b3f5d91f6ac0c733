package alerts

import (
	"os"
	"strconv"
	"time"

	"github.com/goliatone/go-errors"
)

// DefaultCookieName is the cookie carrying the session token.
const DefaultCookieName = "access_token"

// DefaultTokenTTL is the access token validity window.
const DefaultTokenTTL = 30 * time.Minute

// Config holds the process-wide settings consumed by the token service and
// the session guard. It is constructed once at startup and passed by value;
// nothing reads these from ambient state afterwards.
type Config struct {
	SigningKey    string
	SigningMethod string
	TokenTTL      time.Duration
	CookieName    string
	CookieSecure  bool
	DatabaseDSN   string
	ListenAddr    string
}

func (c Config) GetSigningKey() string      { return c.SigningKey }
func (c Config) GetSigningMethod() string   { return c.SigningMethod }
func (c Config) GetTokenTTL() time.Duration { return c.TokenTTL }
func (c Config) GetCookieName() string      { return c.CookieName }
func (c Config) GetCookieSecure() bool      { return c.CookieSecure }

// NewConfigFromEnv builds a Config from the environment. SECRET_KEY is
// mandatory, everything else has a development default.
func NewConfigFromEnv() (Config, error) {
	cfg := Config{
		SigningKey:    os.Getenv("SECRET_KEY"),
		SigningMethod: "HS256",
		TokenTTL:      DefaultTokenTTL,
		CookieName:    DefaultCookieName,
		CookieSecure:  envBool("COOKIE_SECURE", false),
		DatabaseDSN:   envString("DATABASE_URL", "file:alerts.db?_pragma=foreign_keys(1)"),
		ListenAddr:    envString("LISTEN_ADDR", ":8080"),
	}

	if cfg.SigningKey == "" {
		return Config{}, errors.New("SECRET_KEY is required", errors.CategoryValidation)
	}

	if minutes := envInt("ACCESS_TOKEN_EXPIRE_MINUTES", 0); minutes > 0 {
		cfg.TokenTTL = time.Duration(minutes) * time.Minute
	}

	return cfg, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
