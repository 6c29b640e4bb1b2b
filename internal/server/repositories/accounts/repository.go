// Package accounts provides the credential store: account records keyed by email.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/speechauth/internal/server/models"
)

// Repository maps emails to accounts and enforces email uniqueness.
//
// Create fails with common.ErrorInvalidInput for empty fields or a malformed
// email and with common.ErrorAlreadyExists for a taken email. Find and
// VerifyCredential return common.ErrorNotFound; VerifyCredential uses it for
// both an unknown email and a mismatched hash.
type Repository interface {
	Create(ctx context.Context, email, name, passwordHash string) (*models.Account, error)
	Find(ctx context.Context, email string) (*models.Account, error)
	VerifyCredential(ctx context.Context, email, candidateHash string) (*models.Account, error)
	ListAll(ctx context.Context) ([]*models.Account, error)
	Count(ctx context.Context) (int, error)
}
