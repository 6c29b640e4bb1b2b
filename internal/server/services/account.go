// Package services contains server-side business logic. This file implements
// AccountService, which handles registration, login and session verification
// over the credential store and the session token issuer.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/speechauth/internal/common"
	"github.com/dmitrijs2005/speechauth/internal/logging"
	"github.com/dmitrijs2005/speechauth/internal/server/auth"
	"github.com/dmitrijs2005/speechauth/internal/server/config"
	"github.com/dmitrijs2005/speechauth/internal/server/models"
	"github.com/dmitrijs2005/speechauth/internal/server/repositories/accounts"
)

// Session is an authenticated account together with its freshly minted token.
type Session struct {
	Account *models.Account
	Token   string
}

// AccountService provides authentication-related operations:
// - Register: create an account and mint a token
// - Login: check the credential and mint a token
// - Verify: validate a token and re-resolve its account
type AccountService struct {
	repo                  accounts.Repository
	logger                logging.Logger
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	now                   func() time.Time
}

// NewAccountService constructs an AccountService over repo using the secret
// and token lifetime from cfg.
func NewAccountService(repo accounts.Repository, logger logging.Logger, cfg *config.Config) *AccountService {
	return &AccountService{
		repo:                  repo,
		logger:                logger.With("module", "account_service"),
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		now:                   time.Now,
	}
}

// Register stores a new account and returns it with a token. Validation and
// duplicate errors from the store are passed through unchanged.
func (s *AccountService) Register(ctx context.Context, email, passwordHash, name string) (*Session, error) {
	account, err := s.repo.Create(ctx, email, name, passwordHash)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidInput) || errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		s.logger.Error(ctx, "error creating account", "error", err)
		return nil, common.ErrorInternal
	}

	token, err := s.generateToken(account)
	if err != nil {
		s.logger.Error(ctx, "error generating token", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "account registered", "email", account.Email)
	return &Session{Account: account, Token: token}, nil
}

// Login returns common.ErrorUnauthorized for an unknown email and for a
// wrong password alike.
func (s *AccountService) Login(ctx context.Context, email, passwordHash string) (*Session, error) {
	if email == "" || passwordHash == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrorInvalidInput)
	}

	account, err := s.repo.VerifyCredential(ctx, email, passwordHash)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Info(ctx, "login rejected", "email", email)
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "error verifying credential", "error", err)
		return nil, common.ErrorInternal
	}

	token, err := s.generateToken(account)
	if err != nil {
		s.logger.Error(ctx, "error generating token", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "login succeeded", "email", account.Email)
	return &Session{Account: account, Token: token}, nil
}

// Verify checks the token and resolves its email against the store. A valid
// token for an account the store does not know (e.g. issued before a
// restart under the same secret) is reported as common.ErrInvalidToken.
func (s *AccountService) Verify(ctx context.Context, token string) (*models.Account, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.Find(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		s.logger.Error(ctx, "error resolving token account", "error", err)
		return nil, common.ErrorInternal
	}

	return account, nil
}

// List returns every account in registration order.
func (s *AccountService) List(ctx context.Context) ([]*models.Account, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "error listing accounts", "error", err)
		return nil, common.ErrorInternal
	}
	return all, nil
}

func (s *AccountService) generateToken(account *models.Account) (string, error) {
	return auth.GenerateTokenAt(account.Email, account.Name, s.jwtSecret, s.now(), s.tokenValidityDuration)
}
