package tests

import (
	"src.goblgobl.com/ticketgimp/storage"
	"src.goblgobl.com/ticketgimp/storage/data"
)

type factory struct {
	Value valueFactory
}

var Factory factory

type valueFactory struct{}

// Defaults to a random key and value. Returns the key.
func (valueFactory) Insert(args ...string) string {
	key, value := String(10), String(20)
	if len(args) > 0 {
		key = args[0]
	}
	if len(args) > 1 {
		value = args[1]
	}

	if err := storage.DB.SetValue(data.SetValue{Key: key, Value: value}); err != nil {
		panic(err)
	}
	return key
}

// Test storage is always sqlite (see 0tests.go)
func (valueFactory) Truncate() {
	db := storage.DB.(interface {
		Exec(sql string, args ...any) error
	})
	if err := db.Exec("delete from ticketgimp_values"); err != nil {
		panic(err)
	}
}
