package persistence

import (
	"errors"

	"github.com/comercio/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps GORM errors to the domain error vocabulary. Requires
// TranslateError enabled on the gorm session so unique violations surface as
// gorm.ErrDuplicatedKey across drivers.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	default:
		return err
	}
}
