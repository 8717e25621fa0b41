package migrations

import (
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type Migration struct {
	Version int
	Fn      func(conn *sqlite.Conn) error
}

func Run(conn *sqlite.Conn) error {
	migrations := []Migration{
		Migration{1, Migrate_0001},
	}
	return MigrateAll(conn, migrations)
}

// Each migration runs in its own savepoint, together with the insert of
// its version, so a failure leaves the database at the previous version.
func MigrateAll(conn *sqlite.Conn, migrations []Migration) error {
	err := sqlitex.ExecuteTransient(conn, `
		create table if not exists ticketgimp_migrations (
			version int not null primary key,
			created int not null default(unixepoch())
	)`, nil)
	if err != nil {
		return fmt.Errorf("sqlite ticketgimp_migrations - %w", err)
	}

	current, err := GetCurrent(conn)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		version := migration.Version
		if version <= current {
			continue
		}
		if err := migrate(conn, migration); err != nil {
			return fmt.Errorf("sqlite migration %d - %w", version, err)
		}
	}
	return nil
}

func migrate(conn *sqlite.Conn, migration Migration) (err error) {
	defer sqlitex.Save(conn)(&err)

	if err = migration.Fn(conn); err != nil {
		return err
	}
	return sqlitex.Execute(conn, "insert into ticketgimp_migrations (version) values (?1)", &sqlitex.ExecOptions{
		Args: []any{migration.Version},
	})
}

func GetCurrent(conn *sqlite.Conn) (int, error) {
	version := 0
	err := sqlitex.Execute(conn, "select coalesce(max(version), 0) from ticketgimp_migrations", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			version = stmt.ColumnInt(0)
			return nil
		},
	})
	if err != nil {
		return 0, fmt.Errorf("sqlite current migration - %w", err)
	}
	return version, nil
}
