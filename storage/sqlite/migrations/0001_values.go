package migrations

import (
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// called from within a savepoint
func Migrate_0001(conn *sqlite.Conn) error {
	err := sqlitex.ExecuteTransient(conn, `
		create table ticketgimp_values (
			key text not null primary key,
			value text not null,
			updated int not null default(unixepoch())
	)`, nil)

	if err != nil {
		return fmt.Errorf("sqlite 0001 ticketgimp_values - %w", err)
	}
	return nil
}
