package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"src.goblgobl.com/ticketgimp/storage/pg"
	"src.goblgobl.com/ticketgimp/storage/sqlite"
)

func Test_Configure_InvalidType(t *testing.T) {
	err := Configure(Config{Type: "invalid"})
	assert.Equal(t, "code: 103003 - storage.type is invalid. Should be one of: postgres, cockroach or sqlite", err.Error())
}

func Test_Configure_Sqlite(t *testing.T) {
	config := Config{
		Type:   "sqlite",
		Sqlite: sqlite.Config{Path: ":memory:"},
	}
	require.NoError(t, Configure(config))
	defer DB.Close()
	_, ok := DB.(sqlite.Conn)
	assert.True(t, ok)
}

func Test_Configure_Sqlite_MissingPath(t *testing.T) {
	err := Configure(Config{Type: "sqlite"})
	assert.Equal(t, "code: 103007 - storage.sqlite.path is required", err.Error())
}

func Test_Configure_PG_MissingURL(t *testing.T) {
	err := Configure(Config{Type: "postgres", Postgres: pg.Config{}})
	assert.Equal(t, "code: 103008 - storage.pg.url is required", err.Error())
}
