package db

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// EnsureDatabase creates the target database when it does not exist yet, by
// connecting to the maintenance database. Provisioning is best-effort: the
// caller logs the returned error as a warning and continues, since in most
// deployments the database is provisioned out of band.
func EnsureDatabase(host, port, name, user, password string) error {
	admin, err := sql.Open("postgres", DSN(host, port, "postgres", user, password))
	if err != nil {
		return err
	}
	defer admin.Close()

	var exists bool
	err = admin.QueryRow(`SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`, name).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	// CREATE DATABASE cannot be parameterized.
	_, err = admin.Exec(fmt.Sprintf(`CREATE DATABASE %s`, pq.QuoteIdentifier(name)))
	return err
}
