package accounts

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/speechauth/internal/common"
)

// ValidateEmail accepts addresses with a non-empty local part, an "@" and a
// "." inside the domain part. No normalization is applied.
func ValidateEmail(email string) error {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return fmt.Errorf("%w: invalid email format", common.ErrorInvalidInput)
	}
	if !strings.Contains(email[at+1:], ".") {
		return fmt.Errorf("%w: invalid email format", common.ErrorInvalidInput)
	}
	return nil
}

func validateNew(email, name, passwordHash string) error {
	if email == "" || name == "" || passwordHash == "" {
		return fmt.Errorf("%w: email, password, and name are required", common.ErrorInvalidInput)
	}
	return ValidateEmail(email)
}
