package data

import "time"

type GetValueStatus int

const (
	GET_VALUE_OK GetValueStatus = iota
	GET_VALUE_NOT_FOUND
)

type GetValueResult struct {
	Status  GetValueStatus
	Value   string
	Updated time.Time
}

type SetValue struct {
	Key   string
	Value string
}
