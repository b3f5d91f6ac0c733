package alerts

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenService issues and validates signed session tokens. The signing key
// and default ttl are fixed at construction; the service holds no other
// state and is safe for concurrent use.
type TokenService struct {
	signingKey []byte
	ttl        time.Duration
	logger     Logger
}

// NewTokenService creates a new TokenService from the immutable app config.
func NewTokenService(cfg Config, logger Logger) *TokenService {
	if logger == nil {
		logger = defLogger{}
	}

	ttl := cfg.GetTokenTTL()
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &TokenService{
		signingKey: []byte(cfg.GetSigningKey()),
		ttl:        ttl,
		logger:     logger,
	}
}

// Generate signs a session token for the user with the configured ttl.
func (ts *TokenService) Generate(user *User) (string, error) {
	return ts.GenerateWithTTL(user, ts.ttl)
}

// GenerateWithTTL signs a session token expiring at now + ttl.
func (ts *TokenService) GenerateWithTTL(user *User, ttl time.Duration) (string, error) {
	if user == nil {
		return "", errors.New("user must not be nil", errors.CategoryInternal)
	}

	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   user.ID,
		UserName: user.Username,
	}

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary session claims using the configured signing key.
func (ts *TokenService) SignClaims(claims *SessionClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign session token")
	}

	return signedString, nil
}

// Validate parses and validates a token string, returning structured claims.
// Malformed structure, bad signature and past expiry all fail; none panic.
func (ts *TokenService) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrInvalidCredentials
}
