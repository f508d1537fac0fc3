package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of a credential token. There is no
// refresh; an expired token means logging in again.
const TokenTTL = 24 * time.Hour

// TokenIssuer mints and verifies HS256 credential tokens. Only the subject
// claim is trusted; it carries the decimal user id.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

type TokenOption func(*TokenIssuer)

// WithClock replaces time.Now for issuing and validation.
func WithClock(now func() time.Time) TokenOption {
	return func(t *TokenIssuer) {
		t.now = now
	}
}

func NewTokenIssuer(secret string, opts ...TokenOption) *TokenIssuer {
	issuer := &TokenIssuer{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(issuer)
	}
	return issuer
}

func (t *TokenIssuer) Issue(userID int64) (string, error) {
	issuedAt := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature and expiry and returns the user id from the
// subject claim. An empty token is domain.ErrAuthRequired; every other
// failure is domain.ErrInvalidToken.
func (t *TokenIssuer) Parse(tokenStr string) (int64, error) {
	if tokenStr == "" {
		return 0, domain.NewError(domain.ErrAuthRequired, "AUTH_REQUIRED", "Authentication required")
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return 0, invalidToken(err)
	}
	if !token.Valid {
		return 0, invalidToken(errors.New("token not valid"))
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, invalidToken(fmt.Errorf("bad subject %q", claims.Subject))
	}
	return userID, nil
}

func invalidToken(cause error) error {
	return &domain.Error{
		Kind:    domain.ErrInvalidToken,
		Code:    "INVALID_TOKEN",
		Message: "Invalid or expired token",
		Err:     cause,
	}
}
