package alerts

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

const bearerPrefix = "Bearer "

// Locals keys used by the session guard middleware.
const (
	userLocalsKey   = "session:user"
	claimsLocalsKey = "session:claims"
)

// StripBearer removes the transport prefix from raw token material. It is
// idempotent: the prefix appears at most once and a bare token passes
// through untouched.
func StripBearer(token string) string {
	return strings.TrimPrefix(token, bearerPrefix)
}

// SessionGuard resolves the current principal for protected routes. Each
// request makes a single pass: extract, normalize, verify, resolve; there
// are no retries and no shared mutable state.
type SessionGuard struct {
	tokens     *TokenService
	users      Users
	cookieName string
	logger     Logger
}

// NewSessionGuard creates a session guard bound to the configured cookie.
func NewSessionGuard(cfg Config, tokens *TokenService, users Users, logger Logger) *SessionGuard {
	if logger == nil {
		logger = defLogger{}
	}

	cookieName := cfg.GetCookieName()
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	return &SessionGuard{
		tokens:     tokens,
		users:      users,
		cookieName: cookieName,
		logger:     logger,
	}
}

// tokenFromRequest reads raw token material from the session cookie, falling
// back to the Authorization header for non-browser clients.
func (g *SessionGuard) tokenFromRequest(c *fiber.Ctx) (string, error) {
	if raw := c.Cookies(g.cookieName); raw != "" {
		return raw, nil
	}
	if raw := c.Get(fiber.HeaderAuthorization); raw != "" {
		return raw, nil
	}
	return "", ErrNotAuthenticated
}

// Authenticate verifies raw token material and resolves the subject user.
// Failure outcomes keep the distinct reasons the API has always surfaced:
// invalid credentials, invalid token payload, user not found.
func (g *SessionGuard) Authenticate(ctx context.Context, raw string) (*User, *SessionClaims, error) {
	claims, err := g.tokens.Validate(StripBearer(raw))
	if err != nil {
		g.logger.Debug("session token rejected: %v", err)
		return nil, nil, ErrInvalidCredentials
	}

	if claims.UserID == 0 {
		return nil, nil, ErrInvalidTokenPayload
	}

	user, err := g.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, errors.Wrap(err, errors.CategoryInternal, "failed to load session user")
	}

	return user, claims, nil
}

// Protected is the middleware guarding authenticated routes. On success the
// resolved user and claims are stored in request locals and the user context.
func (g *SessionGuard) Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := g.tokenFromRequest(c)
		if err != nil {
			return err
		}

		user, claims, err := g.Authenticate(c.Context(), raw)
		if err != nil {
			return err
		}

		c.Locals(userLocalsKey, user)
		c.Locals(claimsLocalsKey, claims)
		c.SetUserContext(WithClaimsContext(WithContext(c.UserContext(), user), claims))

		return c.Next()
	}
}

// CurrentUser returns the principal resolved by the Protected middleware.
func CurrentUser(c *fiber.Ctx) (*User, error) {
	user, ok := c.Locals(userLocalsKey).(*User)
	if !ok || user == nil {
		return nil, ErrNotAuthenticated
	}
	return user, nil
}

// CurrentClaims returns the verified claims resolved by the middleware.
func CurrentClaims(c *fiber.Ctx) (*SessionClaims, error) {
	claims, ok := c.Locals(claimsLocalsKey).(*SessionClaims)
	if !ok || claims == nil {
		return nil, ErrNotAuthenticated
	}
	return claims, nil
}
