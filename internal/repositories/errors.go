package repositories

import (
	"errors"
	"fmt"

	"github.com/anonto42/curious/backend/internal/apperrors"
	"gorm.io/gorm"
)

// translateErr maps gorm errors onto the application sentinels. The
// database is opened with TranslateError so unique violations arrive as
// gorm.ErrDuplicatedKey.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", apperrors.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", apperrors.ErrConflict, err)
	}
	return err
}
