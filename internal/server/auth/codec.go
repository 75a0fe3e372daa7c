// Package auth encodes and verifies access tokens (HS256 JWTs).
package auth

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/clock"
	"github.com/dmitrijs2005/tokengate/internal/common"
	"github.com/dmitrijs2005/tokengate/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CodecConfig holds the server-side signing parameters.
type CodecConfig struct {
	SecretKey           []byte
	Issuer              string
	Audience            string
	AccessTokenValidity time.Duration
}

// Codec signs and verifies access tokens. It does no I/O and is safe for
// concurrent use.
type Codec struct {
	secret   []byte
	issuer   string
	audience string
	validity time.Duration
	clk      clock.Clock

	strict *jwt.Parser
	loose  *jwt.Parser
}

// claims is the JWT wire form of models.AccessClaims.
type claims struct {
	jwt.RegisteredClaims
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

func NewCodec(cfg CodecConfig, clk clock.Clock) (*Codec, error) {
	switch {
	case len(cfg.SecretKey) == 0:
		return nil, errors.New("codec: secret key is required")
	case cfg.Issuer == "":
		return nil, errors.New("codec: issuer is required")
	case cfg.Audience == "":
		return nil, errors.New("codec: audience is required")
	case cfg.AccessTokenValidity <= 0:
		return nil, errors.New("codec: access token validity must be positive")
	}
	if clk == nil {
		clk = clock.System
	}

	methods := jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})

	return &Codec{
		secret:   slices.Clone(cfg.SecretKey),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		validity: cfg.AccessTokenValidity,
		clk:      clk,
		strict: jwt.NewParser(
			methods,
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.Audience),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(clk.Now),
		),
		loose: jwt.NewParser(methods, jwt.WithoutClaimsValidation()),
	}, nil
}

// Validity is the configured access-token lifetime.
func (c *Codec) Validity() time.Duration {
	return c.validity
}

// NewClaims builds claims for subject issued now. ExpiresAt is exactly
// IssuedAt plus the configured validity.
func (c *Codec) NewClaims(subject, email string, roles []string) *models.AccessClaims {
	iat := c.clk.Now().UTC().Truncate(time.Second)
	return &models.AccessClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		Email:     email,
		Roles:     slices.Clone(roles),
		Issuer:    c.issuer,
		Audience:  []string{c.audience},
		IssuedAt:  iat,
		ExpiresAt: iat.Add(c.validity),
	}
}

// Encode signs ac with HS256.
func (c *Codec) Encode(ac *models.AccessClaims) (string, error) {
	if ac == nil {
		return "", errors.New("codec: nil claims")
	}
	if ac.Subject == "" || ac.ExpiresAt.IsZero() {
		return "", errors.New("codec: subject and expiry are required")
	}

	aud := ac.Audience
	if len(aud) == 0 {
		aud = []string{c.audience}
	}
	iss := ac.Issuer
	if iss == "" {
		iss = c.issuer
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        ac.ID,
			Subject:   ac.Subject,
			Issuer:    iss,
			Audience:  jwt.ClaimStrings(aud),
			IssuedAt:  jwt.NewNumericDate(ac.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(ac.ExpiresAt),
		},
		Email: ac.Email,
		Roles: ac.Roles,
	})

	s, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("codec: sign: %w", err)
	}
	return s, nil
}

// Decode verifies signature, issuer, audience and now < exp.
// Errors are common.ErrMalformedToken, common.ErrSignatureInvalid,
// common.ErrIssuerOrAudienceMismatch or common.ErrTokenExpired, each
// wrapping the underlying jwt error.
func (c *Codec) Decode(token string) (*models.AccessClaims, error) {
	var cl claims
	if _, err := c.strict.ParseWithClaims(token, &cl, c.keyFunc); err != nil {
		return nil, classify(err)
	}
	return toModel(&cl)
}

// DecodeIgnoringExpiry is Decode without the time checks. Use it only to
// identify the holder of an access token, never to authorize.
func (c *Codec) DecodeIgnoringExpiry(token string) (*models.AccessClaims, error) {
	var cl claims
	if _, err := c.loose.ParseWithClaims(token, &cl, c.keyFunc); err != nil {
		return nil, classify(err)
	}
	if cl.Issuer != c.issuer || !slices.Contains([]string(cl.Audience), c.audience) {
		return nil, common.ErrIssuerOrAudienceMismatch
	}
	return toModel(&cl)
}

func (c *Codec) keyFunc(*jwt.Token) (any, error) {
	return c.secret, nil
}

// classify maps jwt errors onto our taxonomy. Order matters: a token that is
// both forged and expired must report the signature problem.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", common.ErrSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
		return fmt.Errorf("%w: %v", common.ErrIssuerOrAudienceMismatch, err)
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
		return fmt.Errorf("%w: %v", common.ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}
}

func toModel(cl *claims) (*models.AccessClaims, error) {
	if cl.Subject == "" || cl.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: subject or expiry missing", common.ErrMalformedToken)
	}
	ac := &models.AccessClaims{
		ID:        cl.ID,
		Subject:   cl.Subject,
		Email:     cl.Email,
		Roles:     cl.Roles,
		Issuer:    cl.Issuer,
		Audience:  []string(cl.Audience),
		ExpiresAt: cl.ExpiresAt.Time.UTC(),
	}
	if cl.IssuedAt != nil {
		ac.IssuedAt = cl.IssuedAt.Time.UTC()
	}
	return ac, nil
}
