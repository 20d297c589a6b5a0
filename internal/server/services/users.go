// Package services contains server-side business logic. This file implements
// UserService: registration, credential checks and login token issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth/password"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

// dummyPassword seeds the digest verified for unknown usernames so that a
// miss costs about as much as a wrong password.
const dummyPassword = "taskkeeper-dummy-password"

// RegisterInput carries the fields accepted by Register.
type RegisterInput struct {
	Username  string
	Email     *string
	FirstName string
	LastName  string
	Password  string
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      password.Hasher
	codec       *auth.TokenCodec
	loginTTL    time.Duration
	dummyDigest string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher password.Hasher, codec *auth.TokenCodec, loginTTL time.Duration) *UserService {
	// a failed dummy hash leaves the digest empty, which never verifies
	dummy, _ := hasher.Hash(dummyPassword)
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		codec:       codec,
		loginTTL:    loginTTL,
		dummyDigest: dummy,
	}
}

// Register stores a new active user with a hashed password. The username
// is stored exactly as given and is the key Authenticate looks up.
//
// Errors:
//   - common.ErrorAlreadyExists: the username is taken.
//   - common.ErrorInternal: hashing or the store failed.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: error hashing password: %w", common.ErrorInternal, err)
	}

	user := &models.User{
		UserName:       in.Username,
		Email:          in.Email,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		PasswordDigest: digest,
		IsActive:       true,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByLogin(ctx, user.UserName)
		switch {
		case err == nil:
			return common.ErrorAlreadyExists
		case !errors.Is(err, common.ErrorNotFound):
			return fmt.Errorf("error looking up user: %w", err)
		}

		user, err = repo.Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("%w: error creating user: %w", common.ErrorInternal, err)
	}

	return user, nil
}

// Authenticate returns the user whose password matches. Unknown, inactive
// and mismatched users all fail with common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, userName, plaintext string) (*models.User, error) {
	var user *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.repomanager.Users(tx).GetUserByLogin(ctx, userName)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(plaintext, s.dummyDigest)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: error looking up user: %w", common.ErrorInternal, err)
	}

	if !s.hasher.Verify(plaintext, user.PasswordDigest) || !user.IsActive {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// Login authenticates and issues a token valid for the configured login
// ttl.
func (s *UserService) Login(ctx context.Context, userName, plaintext string) (string, error) {
	user, err := s.Authenticate(ctx, userName, plaintext)
	if err != nil {
		return "", err
	}

	token, err := s.codec.Issue(user.UserName, user.ID, s.loginTTL)
	if err != nil {
		return "", fmt.Errorf("%w: error issuing token: %w", common.ErrorInternal, err)
	}
	return token, nil
}
