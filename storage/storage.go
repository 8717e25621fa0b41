package storage

import (
	"strings"

	"src.goblgobl.com/ticketgimp/codes"
	"src.goblgobl.com/ticketgimp/log"
	"src.goblgobl.com/ticketgimp/storage/data"
	"src.goblgobl.com/ticketgimp/storage/pg"
	"src.goblgobl.com/ticketgimp/storage/sqlite"
)

// singleton
var DB Storage

// A small key -> text store. The app keeps exactly one value in it (the
// ticket the user entered) but nothing here depends on that.
type Storage interface {
	// health check the storage, returns nil if everything is ok
	Ping() error

	// return information about the storage
	Info() (any, error)

	EnsureMigrations() error

	GetValue(key string) (data.GetValueResult, error)
	SetValue(opts data.SetValue) error

	Close() error
}

type Config struct {
	Type      string        `json:"type" yaml:"type"`
	Sqlite    sqlite.Config `json:"sqlite" yaml:"sqlite"`
	Postgres  pg.Config     `json:"postgres" yaml:"postgres"`
	Cockroach pg.Config     `json:"cockroach" yaml:"cockroach"`
}

func Configure(config Config) (err error) {
	tpe := strings.ToLower(config.Type)
	switch tpe {
	case "sqlite":
		DB, err = sqlite.New(config.Sqlite)
	case "pg", "postgres":
		DB, err = pg.New(config.Postgres, "pg")
	case "cr", "cockroach":
		DB, err = pg.New(config.Cockroach, "cr")
	default:
		err = log.Errf(codes.ERR_INVALID_STORAGE_TYPE, "storage.type is invalid. Should be one of: postgres, cockroach or sqlite")
	}
	return
}
