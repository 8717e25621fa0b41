package migrations

import "embed"

const Table = "ticketgimp_migrations"

//go:embed *.sql
var FS embed.FS
