// Package token derives the signed token shown in the barcode:
//
//	bearerId::eventCode::customerCode::epochSeconds
//
// Both codes are standard TOTP (HMAC-SHA1, 6 digits) over a shared 15
// second window, one keyed by the event key and one by the customer
// key. epochSeconds is the derivation instant, not the window start.
package token

import (
	"crypto/sha1"
	"encoding/base32"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xlzd/gotp"
	"src.goblgobl.com/ticketgimp/ticket"
)

const (
	Period    = 15 * time.Second
	Digits    = 6
	Separator = "::"

	periodMillis  = int64(Period / time.Millisecond)
	periodSeconds = int(Period / time.Second)
)

var (
	ErrEmptyKey = errors.New("key is empty")

	hasher = &gotp.Hasher{HashName: "sha1", Digest: sha1.New}
)

type Token struct {
	BearerId     string
	EventCode    string
	CustomerCode string
	EpochSeconds int64
	Window       int64
}

func (t Token) String() string {
	return strings.Join([]string{
		t.BearerId,
		t.EventCode,
		t.CustomerCode,
		strconv.FormatInt(t.EpochSeconds, 10),
	}, Separator)
}

// The instant the window this token was derived in ends. Codes are
// stale from then on.
func (t Token) Expires() time.Time {
	return time.UnixMilli((t.Window + 1) * periodMillis)
}

// floor(unixMillis / 15000), flooring properly for instants before
// the epoch as well.
func Window(now time.Time) int64 {
	return floorDiv(now.UnixMilli(), periodMillis)
}

func WindowStart(window int64) time.Time {
	return time.UnixMilli(window * periodMillis)
}

func Derive(d ticket.Descriptor, now time.Time) (Token, error) {
	window := Window(now)

	eventCode, err := code(KeyEvent, d.EventKey(), window)
	if err != nil {
		return Token{}, err
	}
	customerCode, err := code(KeyCustomer, d.CustomerKey(), window)
	if err != nil {
		return Token{}, err
	}

	return Token{
		BearerId:     d.BearerId(),
		EventCode:    eventCode,
		CustomerCode: customerCode,
		EpochSeconds: floorDiv(now.UnixMilli(), 1000),
		Window:       window,
	}, nil
}

// Decode + Derive for callers that only have the stored blob.
func DeriveRaw(raw string, now time.Time) (Token, error) {
	d, err := ticket.Decode(raw)
	if err != nil {
		return Token{}, err
	}
	return Derive(d, now)
}

func code(which Key, key []byte, window int64) (otp string, err error) {
	if len(key) == 0 {
		return "", &DerivationError{Key: which, Err: ErrEmptyKey}
	}

	// gotp panics on secrets it can't decode rather than returning
	// an error
	defer func() {
		if r := recover(); r != nil {
			otp = ""
			err = &DerivationError{Key: which, Err: fmt.Errorf("%v", r)}
		}
	}()

	// gotp wants a base32 secret, ours are raw bytes
	secret := base32.StdEncoding.EncodeToString(key)
	totp := gotp.NewTOTP(secret, Digits, periodSeconds, hasher)

	// Asking for the window's start rather than the instant itself
	// pins the TOTP counter to exactly Window(now).
	return totp.AtTime(WindowStart(window)), nil
}

func floorDiv(a int64, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
