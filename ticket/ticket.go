// Package ticket decodes the opaque ticket blob a user pastes in: base64
// wrapping a JSON object with the bearer id (t), the customer key (ck)
// and the event key (ek), both keys hex encoded.
package ticket

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/goccy/go-json"
)

const (
	FieldBearerId    = "t"
	FieldCustomerKey = "ck"
	FieldEventKey    = "ek"
)

// Immutable. The key slices are copied in and out so that nothing
// holding a Descriptor can change another holder's view of it.
type Descriptor struct {
	bearerId    string
	customerKey []byte
	eventKey    []byte
}

func New(bearerId string, customerKey []byte, eventKey []byte) Descriptor {
	return Descriptor{
		bearerId:    bearerId,
		customerKey: clone(customerKey),
		eventKey:    clone(eventKey),
	}
}

func (d Descriptor) BearerId() string {
	return d.bearerId
}

func (d Descriptor) CustomerKey() []byte {
	return clone(d.customerKey)
}

func (d Descriptor) EventKey() []byte {
	return clone(d.eventKey)
}

func (d Descriptor) CustomerKeyHex() string {
	return hex.EncodeToString(d.customerKey)
}

func (d Descriptor) EventKeyHex() string {
	return hex.EncodeToString(d.eventKey)
}

// The inverse of Decode.
func (d Descriptor) Encode() string {
	return Encode(d.bearerId, d.CustomerKeyHex(), d.EventKeyHex())
}

func (d Descriptor) Equal(other Descriptor) bool {
	return d.bearerId == other.bearerId &&
		string(d.customerKey) == string(other.customerKey) &&
		string(d.eventKey) == string(other.eventKey)
}

type wire struct {
	BearerId    string `json:"t"`
	CustomerKey string `json:"ck"`
	EventKey    string `json:"ek"`
}

// Builds the blob Decode expects. The hex values are written as given,
// which lets tests produce deliberately broken tickets.
func Encode(bearerId string, customerKeyHex string, eventKeyHex string) string {
	// marshalling three strings can't fail
	data, _ := json.Marshal(wire{
		BearerId:    bearerId,
		CustomerKey: customerKeyHex,
		EventKey:    eventKeyHex,
	})
	return base64.StdEncoding.EncodeToString(data)
}

// Pure: the same input always produces the same Descriptor or the same
// *DecodeError.
func Decode(raw string) (Descriptor, error) {
	data, err := decodeBase64(strings.TrimSpace(raw))
	if err != nil {
		return Descriptor{}, &DecodeError{Reason: ReasonInvalidBase64, Err: err}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Descriptor{}, &DecodeError{Reason: ReasonInvalidJSON, Err: err}
	}
	if fields == nil {
		// the literal `null`
		return Descriptor{}, &DecodeError{Reason: ReasonInvalidJSON, Err: errNotAnObject}
	}

	bearerId, err := stringField(fields, FieldBearerId)
	if err != nil {
		return Descriptor{}, err
	}
	// the bearer id is the first "::" separated field of the token
	if strings.Contains(bearerId, ":") {
		return Descriptor{}, &DecodeError{Reason: ReasonInvalidField, Field: FieldBearerId, Err: errHasColon}
	}
	customerKey, err := hexField(fields, FieldCustomerKey)
	if err != nil {
		return Descriptor{}, err
	}
	eventKey, err := hexField(fields, FieldEventKey)
	if err != nil {
		return Descriptor{}, err
	}

	return Descriptor{
		bearerId:    bearerId,
		customerKey: customerKey,
		eventKey:    eventKey,
	}, nil
}

// Tickets get copied around by hand, so padding is frequently lost and
// occasionally the url alphabet shows up.
var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

func decodeBase64(value string) ([]byte, error) {
	var first error
	for _, encoding := range encodings {
		data, err := encoding.DecodeString(value)
		if err == nil {
			return data, nil
		}
		if first == nil {
			first = err
		}
	}
	return nil, first
}

func stringField(fields map[string]json.RawMessage, name string) (string, error) {
	value, ok := fields[name]
	if !ok || isNull(value) {
		return "", &DecodeError{Reason: ReasonMissingField, Field: name}
	}

	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return "", &DecodeError{Reason: ReasonInvalidField, Field: name, Err: errNotAString}
	}
	return s, nil
}

func hexField(fields map[string]json.RawMessage, name string) ([]byte, error) {
	s, err := stringField(fields, name)
	if err != nil {
		return nil, err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &DecodeError{Reason: ReasonInvalidField, Field: name, Err: err}
	}
	return b, nil
}

func isNull(value json.RawMessage) bool {
	return strings.TrimSpace(string(value)) == "null"
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
