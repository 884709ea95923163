package db

import "database/sql"

// DB wraps the shared sql.DB pool so stores depend on one local type.
type DB struct {
	*sql.DB
}
