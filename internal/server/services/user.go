package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tokengate/internal/clock"
	"github.com/dmitrijs2005/tokengate/internal/common"
	"github.com/dmitrijs2005/tokengate/internal/dbx"
	"github.com/dmitrijs2005/tokengate/internal/server/models"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// UserService is the bcrypt-backed IdentityStore. It also creates accounts.
type UserService struct {
	db    dbx.DBTX
	repos repomanager.RepositoryManager
	clk   clock.Clock
	cost  int

	// dummyHash is compared against when the email is unknown, so both
	// outcomes cost one bcrypt comparison.
	dummyHash []byte
}

func NewUserService(db dbx.DBTX, repos repomanager.RepositoryManager, clk clock.Clock) *UserService {
	return newUserService(db, repos, clk, bcrypt.DefaultCost)
}

func newUserService(db dbx.DBTX, repos repomanager.RepositoryManager, clk clock.Clock, cost int) *UserService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("tokengate-dummy-secret"), cost)
	return &UserService{db: db, repos: repos, clk: clk, cost: cost, dummyHash: dummy}
}

func (s *UserService) Bind(db dbx.DBTX) IdentityStore {
	c := *s
	c.db = db
	return &c
}

func (s *UserService) VerifyCredential(ctx context.Context, email, secret string) (string, error) {
	user, err := s.repos.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(secret))
			return "", common.ErrorUnauthorized
		}
		return "", storageErr(err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(secret)); err != nil {
		return "", common.ErrorUnauthorized
	}
	return user.ID, nil
}

func (s *UserService) RolesFor(ctx context.Context, subjectID string) ([]string, error) {
	roles, err := s.repos.Users(s.db).Roles(ctx, subjectID)
	if err != nil {
		return nil, storageErr(err)
	}
	return roles, nil
}

func (s *UserService) SubjectExists(ctx context.Context, subjectID string) (bool, error) {
	ok, err := s.repos.Users(s.db).Exists(ctx, subjectID)
	if err != nil {
		return false, storageErr(err)
	}
	return ok, nil
}

// CreateAccount hashes secret and stores the user with roles through db.
func (s *UserService) CreateAccount(ctx context.Context, db dbx.DBTX, email, secret string, roles []string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || secret == "" {
		return nil, common.ErrMissingField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	user := &models.User{Email: email, PasswordHash: hash, CreatedAt: s.clk.Now()}
	u, err := s.repos.Users(db).Create(ctx, user, roles)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, storageErr(err)
	}
	return u, nil
}
