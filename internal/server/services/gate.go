package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tokengate/internal/common"
	"github.com/dmitrijs2005/tokengate/internal/logging"
	"github.com/dmitrijs2005/tokengate/internal/server/auth"
	"github.com/dmitrijs2005/tokengate/internal/server/models"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/revokedtokens"
)

// RejectReason says which gate step refused a request.
type RejectReason string

const (
	ReasonMissingCredential  RejectReason = "missing_credential"
	ReasonInvalidToken       RejectReason = "invalid_token"
	ReasonRevoked            RejectReason = "revoked"
	ReasonStorageUnavailable RejectReason = "storage_unavailable"
)

// Rejection is the gate's failure outcome. errors.Is matches both the
// reason's sentinel and the underlying cause.
type Rejection struct {
	Reason RejectReason
	Err    error
}

func (r *Rejection) Error() string {
	if r.Err == nil {
		return "rejected: " + string(r.Reason)
	}
	return fmt.Sprintf("rejected: %s: %v", r.Reason, r.Err)
}

func (r *Rejection) Unwrap() []error {
	errs := []error{r.sentinel()}
	if r.Err != nil {
		errs = append(errs, r.Err)
	}
	return errs
}

func (r *Rejection) sentinel() error {
	switch r.Reason {
	case ReasonMissingCredential:
		return common.ErrMissingCredential
	case ReasonRevoked:
		return common.ErrRevoked
	case ReasonStorageUnavailable:
		return common.ErrStorageUnavailable
	default:
		return common.ErrInvalidAccessToken
	}
}

// Principal is an authenticated caller.
type Principal struct {
	Token  string
	Claims *models.AccessClaims
}

// Subject is the authenticated user id.
func (p *Principal) Subject() string {
	return p.Claims.Subject
}

// Gate authenticates bearer credentials: stateless verification first, then
// one lookup in the revoked-token store. Any store failure rejects.
type Gate struct {
	codec    *auth.Codec
	revoked  revokedtokens.Repository
	log      logging.Logger
	reporter ErrorReporter
}

func NewGate(codec *auth.Codec, revoked revokedtokens.Repository, log logging.Logger, reporter ErrorReporter) *Gate {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Gate{codec: codec, revoked: revoked, log: log, reporter: reporter}
}

// Authenticate checks a raw "Bearer <token>" credential.
func (g *Gate) Authenticate(ctx context.Context, credential string) (*Principal, error) {
	const op = "services.Gate.Authenticate"

	token, ok := ParseBearer(credential)
	if !ok {
		return nil, &Rejection{Reason: ReasonMissingCredential}
	}

	claims, err := g.codec.Decode(token)
	if err != nil {
		g.log.Debug(ctx, "access token rejected", "op", op, logging.Err(err))
		return nil, &Rejection{Reason: ReasonInvalidToken, Err: err}
	}

	revoked, err := g.revoked.IsRevoked(ctx, token)
	if err != nil {
		g.log.Error(ctx, "revocation lookup failed", "op", op, "user_id", claims.Subject, logging.Err(err))
		g.reporter.Report(ctx, fmt.Errorf("%s: %w", op, err))
		return nil, &Rejection{Reason: ReasonStorageUnavailable, Err: err}
	}
	if revoked {
		g.log.Info(ctx, "revoked access token presented", "op", op, "user_id", claims.Subject)
		return nil, &Rejection{Reason: ReasonRevoked}
	}

	return &Principal{Token: token, Claims: claims}, nil
}

// ParseBearer extracts the token from "Bearer <token>". The scheme is case
// insensitive and the token must be non-empty.
func ParseBearer(credential string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(credential), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

type principalKey struct{}

// WithPrincipal attaches p to ctx for downstream handlers.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
