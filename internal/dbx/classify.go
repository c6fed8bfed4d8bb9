package dbx

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/simplenotes/internal/common"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Classify maps a driver error onto the common error taxonomy.
// SQLite constraint failures (primary key, unique, foreign key, not null)
// become ErrConstraintViolation; everything else becomes ErrStoreUnavailable.
// Errors that are already classified are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrNotFound) ||
		errors.Is(err, common.ErrConstraintViolation) ||
		errors.Is(err, common.ErrStoreUnavailable) {
		return err
	}

	var se *sqlite.Error
	if errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %w", common.ErrConstraintViolation, err)
	}
	return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
}
