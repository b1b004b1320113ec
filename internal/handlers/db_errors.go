package handlers

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// isDuplicateEntryError checks if the error corresponds to a unique key
// violation (the catalog keeps product names unique). This helps translate DB
// failures into clear client-facing responses instead of generic 500 errors.
// Covered for both supported drivers: MySQL/MariaDB 1062 and Postgres 23505.
func isDuplicateEntryError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
