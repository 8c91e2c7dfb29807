// internal/app/bootstrap/dbdeps.go
package bootstrap

import "github.com/jmoiron/sqlx"

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	SQL *sqlx.DB
}
