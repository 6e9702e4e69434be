package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"boutique-tailoring/apperrors"

	"github.com/go-sql-driver/mysql"
)

const (
	errDuplicateEntry    = 1062
	errRowIsReferenced   = 1451
	errNoReferencedRow   = 1452
	errRowIsReferenced57 = 1217
)

// mapError translates driver errors into apperrors sentinels. Anything it
// does not recognise is returned unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case errDuplicateEntry:
			return fmt.Errorf("%w: %s", apperrors.ErrConflict, me.Message)
		case errRowIsReferenced, errRowIsReferenced57:
			return fmt.Errorf("%w: record is still referenced", apperrors.ErrConflict)
		case errNoReferencedRow:
			return fmt.Errorf("%w: %s", apperrors.ErrInvalidReference, referencedColumn(me.Message))
		}
	}
	return err
}

// referencedColumn pulls "FOREIGN KEY (`col`)" out of a 1452 message.
func referencedColumn(msg string) string {
	const marker = "FOREIGN KEY (`"
	i := strings.Index(msg, marker)
	if i < 0 {
		return msg
	}
	rest := msg[i+len(marker):]
	if j := strings.Index(rest, "`"); j > 0 {
		return rest[:j]
	}
	return msg
}

// expectAffected turns an update that matched nothing into ErrNotFound.
func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
