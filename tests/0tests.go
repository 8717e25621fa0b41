package tests

// This _needs_ to be called "0tests", because we need the init
// in this file to execute before the init in any other file
// (awful)

import (
	crand "crypto/rand"
	"encoding/hex"
	"io"
	"math/rand"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"src.goblgobl.com/ticketgimp/log"
	"src.goblgobl.com/ticketgimp/storage"
	"src.goblgobl.com/ticketgimp/storage/sqlite"
	"src.goblgobl.com/ticketgimp/ticket"
)

func init() {
	err := log.Configure(log.Config{
		Level: "WARN",
	})
	if err != nil {
		panic(err)
	}

	storageConfig := storage.Config{
		Type:   "sqlite",
		Sqlite: sqlite.Config{Path: ":memory:"},
	}

	if err := storage.Configure(storageConfig); err != nil {
		panic(err)
	}

	if err := storage.DB.EnsureMigrations(); err != nil {
		panic(err)
	}
}

func StorageType() string {
	return "sqlite"
}

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// String() => random string of 1-10 characters
// String(n) => random string of n characters
// String(min, max) => random string between min and max characters
func String(constraints ...int) string {
	min, max := 1, 10
	switch len(constraints) {
	case 1:
		min, max = constraints[0], constraints[0]
	case 2:
		min, max = constraints[0], constraints[1]
	}

	n := min
	if max > min {
		n += rand.Intn(max - min + 1)
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

func Key() ([]byte, string) {
	key := make([]byte, 20)
	if _, err := io.ReadFull(crand.Reader, key); err != nil {
		panic(err)
	}
	return key, hex.EncodeToString(key)
}

func HexKey() string {
	_, h := Key()
	return h
}

// A valid, random, encoded ticket
func Ticket() string {
	return ticket.Encode(String(4, 8), HexKey(), HexKey())
}

// Swaps the global logger for one that records everything at
// level and above, for the duration of fn.
func CaptureLog(level zapcore.Level, fn func()) []observer.LoggedEntry {
	core, logs := observer.New(level)
	original := log.Logger()
	log.Use(zap.New(core))
	defer log.Use(original)
	fn()
	return logs.AllUntimed()
}
