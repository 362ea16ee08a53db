// Package auth mints and checks the signed access tokens that carry a
// caller's identity and role. Tokens are HS256 JWTs with the payload
//
//	{"sub": "<identity id>", "role": "user|lawyer|judge", "exp": <unix>, "iat": <unix>}
//
// Nothing is stored server-side; a token is valid until exp.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bailbridge/internal/common"
	"github.com/dmitrijs2005/bailbridge/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultValidity is the fixed session window.
const DefaultValidity = 24 * time.Hour

// Claims is the verified content of an access token.
type Claims struct {
	Subject   string
	Role      models.Role
	ExpiresAt time.Time
}

// tokenClaims is the wire shape of the JWT payload.
type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// GetNotBefore hides any nbf claim from the validator: tokens carry no
// not-yet-valid window.
func (tokenClaims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

// Codec issues and parses access tokens with a single symmetric secret.
// It is immutable after construction and safe for concurrent use.
type Codec struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
	parser   *jwt.Parser
}

// Option customises a Codec.
type Option func(*Codec)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec returns a Codec signing with secret. A non-positive validity falls
// back to DefaultValidity.
func NewCodec(secret []byte, validity time.Duration, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty signing secret", common.ErrIssuanceFailure)
	}
	if validity <= 0 {
		validity = DefaultValidity
	}

	c := &Codec{
		secret:   append([]byte(nil), secret...),
		validity: validity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	return c, nil
}

// Validity returns the lifetime given to new tokens.
func (c *Codec) Validity() time.Duration {
	return c.validity
}

// Issue signs a token for subjectID with role, expiring one validity window
// from now.
func (c *Codec) Issue(subjectID string, role models.Role) (string, error) {
	if subjectID == "" {
		return "", fmt.Errorf("%w: empty subject", common.ErrIssuanceFailure)
	}
	if !role.Valid() {
		return "", fmt.Errorf("%w: %w", common.ErrIssuanceFailure, common.ErrInvalidRole)
	}

	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
		},
		Role: role.String(),
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrIssuanceFailure, err)
	}
	return signed, nil
}

// Parse verifies the signature of tokenString, then its expiry, and returns
// the claims. Errors are common.ErrInvalidSignature, common.ErrTokenExpired
// or common.ErrMalformedToken. There is no not-before check.
func (c *Codec) Parse(tokenString string) (*Claims, error) {
	tc := &tokenClaims{}

	token, err := c.parser.ParseWithClaims(tokenString, tc, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}
	if !token.Valid {
		return nil, common.ErrMalformedToken
	}

	if tc.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", common.ErrMalformedToken)
	}
	role, err := models.ParseRole(tc.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}

	return &Claims{
		Subject:   tc.Subject,
		Role:      role,
		ExpiresAt: tc.ExpiresAt.Time,
	}, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", common.ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", common.ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}
}
