package ticket

import (
	"errors"
	"fmt"
)

type Reason string

const (
	ReasonInvalidBase64 Reason = "invalid_base64"
	ReasonInvalidJSON   Reason = "invalid_json"
	ReasonMissingField  Reason = "missing_field"
	ReasonInvalidField  Reason = "invalid_field"
)

var (
	errNotAnObject = errors.New("ticket is not a json object")
	errNotAString  = errors.New("value is not a string")
	errHasColon    = errors.New("bearer id contains ':'")
)

type DecodeError struct {
	Reason Reason
	// empty for base64 and json failures
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	msg := "ticket: " + string(e.Reason)
	if e.Field != "" {
		msg += fmt.Sprintf(" %q", e.Field)
	}
	if e.Err != nil {
		msg += " - " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
