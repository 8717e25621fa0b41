package sqlite

import (
	"fmt"
	"sync"
	"time"

	"src.goblgobl.com/ticketgimp/codes"
	"src.goblgobl.com/ticketgimp/log"
	"src.goblgobl.com/ticketgimp/storage/data"
	"src.goblgobl.com/ticketgimp/storage/sqlite/migrations"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type Config struct {
	Path string `json:"path" yaml:"path"`
}

// A single connection, serialized behind a mutex. There's one reader
// and one (rare) writer, a pool would only add moving parts. Conn is a
// value type, copies share the connection.
type Conn struct {
	mu   *sync.Mutex
	conn *sqlite.Conn
}

func New(config Config) (Conn, error) {
	filePath := config.Path
	if filePath == "" {
		return Conn{}, log.Errf(codes.ERR_STORAGE_PATH_REQUIRED, "storage.sqlite.path is required")
	}

	conn, err := sqlite.OpenConn(filePath)
	if err != nil {
		return Conn{}, fmt.Errorf("Sqlite.New - %w", err)
	}

	c := Conn{mu: new(sync.Mutex), conn: conn}
	if err := c.Exec("pragma busy_timeout=5000"); err != nil {
		conn.Close()
		return Conn{}, fmt.Errorf("Sqlite.New (pragma) - %w", err)
	}
	return c, nil
}

func (c Conn) Exec(sql string, args ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sqlitex.Execute(c.conn, sql, &sqlitex.ExecOptions{Args: args})
}

func (c Conn) Ping() error {
	if err := c.Exec("select 1"); err != nil {
		return fmt.Errorf("Sqlite.Ping - %w", err)
	}
	return nil
}

func (c Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

func (c Conn) EnsureMigrations() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return migrations.Run(c.conn)
}

func (c Conn) Info() (any, error) {
	c.mu.Lock()
	migration, err := migrations.GetCurrent(c.conn)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return struct {
		Type      string `json:"type"`
		Migration int    `json:"migration"`
	}{
		Type:      "sqlite",
		Migration: migration,
	}, nil
}

func (c Conn) GetValue(key string) (data.GetValueResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := data.GetValueResult{Status: data.GET_VALUE_NOT_FOUND}
	err := sqlitex.Execute(c.conn, `
		select value, updated
		from ticketgimp_values
		where key = ?1
	`, &sqlitex.ExecOptions{
		Args: []any{key},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			result.Status = data.GET_VALUE_OK
			result.Value = stmt.ColumnText(0)
			result.Updated = time.Unix(stmt.ColumnInt64(1), 0)
			return nil
		},
	})
	if err != nil {
		return result, fmt.Errorf("Sqlite.GetValue - %w", err)
	}
	return result, nil
}

func (c Conn) SetValue(opts data.SetValue) error {
	err := c.Exec(`
		insert into ticketgimp_values (key, value, updated)
		values (?1, ?2, unixepoch())
		on conflict (key) do update set
			value = excluded.value,
			updated = excluded.updated
	`, opts.Key, opts.Value)

	if err != nil {
		return fmt.Errorf("Sqlite.SetValue - %w", err)
	}
	return nil
}
