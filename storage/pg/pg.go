package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"src.goblgobl.com/ticketgimp/codes"
	"src.goblgobl.com/ticketgimp/log"
	"src.goblgobl.com/ticketgimp/storage/data"
	"src.goblgobl.com/ticketgimp/storage/pg/migrations"
)

type Config struct {
	URL string `json:"url" yaml:"url"`
}

// The subset of *pgxpool.Pool we use, so that tests can hand in a
// pgxmock pool instead.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

type DB struct {
	Pool Pool
	url  string
	tpe  string
}

// tpe is "pg" or "cr", it's only reported back through Info.
func New(config Config, tpe string) (DB, error) {
	url := config.URL
	if url == "" {
		return DB{}, log.Errf(codes.ERR_STORAGE_URL_REQUIRED, "storage.pg.url is required")
	}

	pool, err := pgxpool.New(context.Background(), url)
	if err != nil {
		return DB{}, fmt.Errorf("PG.New - %w", err)
	}
	return DB{Pool: pool, url: url, tpe: tpe}, nil
}

func (db DB) Ping() error {
	if err := db.Pool.Ping(context.Background()); err != nil {
		return fmt.Errorf("PG.Ping - %w", err)
	}
	return nil
}

func (db DB) Close() error {
	db.Pool.Close()
	return nil
}

// goose needs a database/sql handle, so migrations get their own short
// lived connection through the pgx stdlib driver.
func (db DB) EnsureMigrations() error {
	conn, err := sql.Open("pgx", db.url)
	if err != nil {
		return fmt.Errorf("PG.EnsureMigrations (open) - %w", err)
	}
	defer conn.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(migrations.Table)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("PG.EnsureMigrations (dialect) - %w", err)
	}
	if err := goose.UpContext(context.Background(), conn, "."); err != nil {
		return fmt.Errorf("PG.EnsureMigrations - %w", err)
	}
	return nil
}

func (db DB) Info() (any, error) {
	var migration int
	row := db.Pool.QueryRow(context.Background(), `
		select coalesce(max(version_id), 0)
		from `+migrations.Table+`
		where is_applied
	`)
	if err := row.Scan(&migration); err != nil {
		return nil, fmt.Errorf("PG.Info - %w", err)
	}

	return struct {
		Type      string `json:"type"`
		Migration int    `json:"migration"`
	}{
		Type:      db.tpe,
		Migration: migration,
	}, nil
}

func (db DB) GetValue(key string) (data.GetValueResult, error) {
	row := db.Pool.QueryRow(context.Background(), `
		select value, updated
		from ticketgimp_values
		where key = $1
	`, key)

	var value string
	var updated time.Time
	if err := row.Scan(&value, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return data.GetValueResult{Status: data.GET_VALUE_NOT_FOUND}, nil
		}
		return data.GetValueResult{}, fmt.Errorf("PG.GetValue - %w", err)
	}

	return data.GetValueResult{
		Status:  data.GET_VALUE_OK,
		Value:   value,
		Updated: updated,
	}, nil
}

func (db DB) SetValue(opts data.SetValue) error {
	_, err := db.Pool.Exec(context.Background(), `
		insert into ticketgimp_values (key, value, updated)
		values ($1, $2, now())
		on conflict (key) do update set
			value = excluded.value,
			updated = excluded.updated
	`, opts.Key, opts.Value)

	if err != nil {
		return fmt.Errorf("PG.SetValue - %w", err)
	}
	return nil
}
