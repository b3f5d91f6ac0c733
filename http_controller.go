package alerts

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// AuthController owns the login/logout/me endpoints.
type AuthController struct {
	Logger Logger
	repo   RepositoryManager
	tokens *TokenService
	cfg    Config
}

func NewAuthController(cfg Config, repo RepositoryManager, tokens *TokenService, logger Logger) *AuthController {
	if logger == nil {
		logger = defLogger{}
	}
	return &AuthController{
		Logger: logger,
		repo:   repo,
		tokens: tokens,
		cfg:    cfg,
	}
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// LoginResponse deliberately omits the raw token: the HttpOnly cookie is the
// only channel, so a script injection cannot read the credential back out.
type LoginResponse struct {
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
	User      *User  `json:"user"`
}

// Login authenticates the email/password pair and sets the session cookie.
// Unknown email and wrong password produce byte-identical failures so the
// endpoint cannot be used to enumerate accounts.
func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid login payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return wrapValidationError(err)
	}

	identifier := strings.ToLower(strings.TrimSpace(payload.Email))
	a.Logger.Info("attempting login for %s", identifier)

	user, err := a.repo.Users().GetByEmail(c.Context(), identifier)
	if err != nil {
		if IsNotFound(err) {
			a.Logger.Info("login failed for %s", identifier)
			return ErrInvalidEmailOrPassword
		}
		return err
	}

	if err := ComparePasswordAndHash(payload.Password, user.PasswordHash); err != nil {
		a.Logger.Info("login failed for %s", identifier)
		return ErrInvalidEmailOrPassword
	}

	token, err := a.tokens.Generate(user)
	if err != nil {
		return err
	}

	ttl := a.cfg.GetTokenTTL()
	a.setSessionCookie(c, token, ttl)

	a.Logger.Info("login successful for %s (user %d)", identifier, user.ID)

	return c.JSON(LoginResponse{
		TokenType: "bearer",
		ExpiresIn: int(ttl.Seconds()),
		User:      user,
	})
}

// Logout deletes the session cookie. Authentication is stateless, so there
// is nothing to revoke server side.
func (a *AuthController) Logout(c *fiber.Ctx) error {
	a.clearSessionCookie(c)
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

// Me returns the principal resolved by the session guard.
func (a *AuthController) Me(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (a *AuthController) setSessionCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     a.cfg.GetCookieName(),
		Value:    bearerPrefix + token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   a.cfg.GetCookieSecure(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (a *AuthController) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     a.cfg.GetCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   a.cfg.GetCookieSecure(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func wrapValidationError(err error) error {
	richErr := errors.Wrap(err, errors.CategoryValidation, "validation failed").
		WithCode(errors.CodeBadRequest)

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]any, len(fieldErrs))
		for name, ferr := range fieldErrs {
			fields[name] = ferr.Error()
		}
		richErr = richErr.WithMetadata(map[string]any{"fields": fields})
	}

	return richErr
}
