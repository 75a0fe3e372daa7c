// Package services contains the server-side business logic: issuing token
// pairs, authenticating requests, rotating and revoking refresh tokens, and
// the credential store those flows depend on.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tokengate/internal/common"
	"github.com/dmitrijs2005/tokengate/internal/dbx"
)

// IdentityStore answers questions about credential holders.
type IdentityStore interface {
	// VerifyCredential returns the subject id for a matching email/secret
	// pair, or common.ErrorUnauthorized.
	VerifyCredential(ctx context.Context, email, secret string) (string, error)
	RolesFor(ctx context.Context, subjectID string) ([]string, error)
	SubjectExists(ctx context.Context, subjectID string) (bool, error)

	// Bind returns a store that reads through db, e.g. a running transaction.
	Bind(db dbx.DBTX) IdentityStore
}

// ErrorReporter forwards failures that need a human to error tracking.
type ErrorReporter interface {
	Report(ctx context.Context, err error)
}

type nopReporter struct{}

func (nopReporter) Report(context.Context, error) {}

// storageErr tags err as a storage failure unless it already carries one of
// our sentinels.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrStorageUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
