package ticketgimp

import (
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"src.goblgobl.com/ticketgimp/log"
	"src.goblgobl.com/ticketgimp/storage"
	"src.goblgobl.com/ticketgimp/storage/data"
	"src.goblgobl.com/ticketgimp/ticket"
	"src.goblgobl.com/ticketgimp/token"
)

// The storage key the ticket blob lives under.
const TicketKey = "ticket"

type Status int

const (
	// nothing entered (or only whitespace)
	StatusNoTicket Status = iota
	// something entered that doesn't decode
	StatusMalformed
	// decodes, but a code can't be derived from it
	StatusUnderivable
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusNoTicket:
		return "no_ticket"
	case StatusMalformed:
		return "malformed"
	case StatusUnderivable:
		return "underivable"
	case StatusReady:
		return "ready"
	}
	return "unknown"
}

// A snapshot of the wallet. Token is only meaningful when Status is
// StatusReady; Err is set for StatusMalformed and StatusUnderivable.
type State struct {
	Status Status
	Raw    string
	Token  token.Token
	Err    error
}

// What gets displayed: the signed token, or "" when there isn't one.
func (s State) Text() string {
	if s.Status != StatusReady {
		return ""
	}
	return s.Token.String()
}

// Owns the one ticket the app shows. The ticket is loaded once, written
// back on change, and decoded once per change; the token is re-derived
// from the decoded ticket on every Recompute.
//
// Recompute runs on the scheduler's goroutine while the http handlers
// and the terminal ui read, hence the lock.
type Wallet struct {
	store storage.Storage
	now   func() time.Time

	mu         sync.RWMutex
	raw        string
	descriptor ticket.Descriptor
	decodeErr  error
	state      State
}

func NewWallet(store storage.Storage) *Wallet {
	return &Wallet{
		store: store,
		now:   time.Now,
		state: State{Status: StatusNoTicket},
	}
}

func (w *Wallet) Load() error {
	result, err := w.store.GetValue(TicketKey)
	if err != nil {
		return err
	}

	raw := ""
	if result.Status == data.GET_VALUE_OK {
		raw = result.Value
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.setTicket(raw)
	w.recompute(w.now())
	log.Info("wallet_load", zap.Stringer("status", w.state.Status))
	return nil
}

// Persists raw (whatever it is, a malformed ticket is still what the
// user entered) and re-derives right away rather than waiting for the
// next window.
func (w *Wallet) Save(raw string) error {
	if err := w.store.SetValue(data.SetValue{Key: TicketKey, Value: raw}); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.setTicket(raw)
	w.recompute(w.now())
	log.Info("wallet_save", zap.Stringer("status", w.state.Status))
	return nil
}

// Derives the token for now. This is the refresh scheduler's callback.
func (w *Wallet) Recompute(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.recompute(now)
}

func (w *Wallet) Current() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

func (w *Wallet) Raw() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.raw
}

// caller holds the write lock
func (w *Wallet) setTicket(raw string) {
	w.raw = raw
	w.descriptor = ticket.Descriptor{}
	w.decodeErr = nil
	if strings.TrimSpace(raw) == "" {
		return
	}
	w.descriptor, w.decodeErr = ticket.Decode(raw)
}

// caller holds the write lock
func (w *Wallet) recompute(now time.Time) {
	previous := w.state
	next := State{Raw: w.raw}

	switch {
	case strings.TrimSpace(w.raw) == "":
		next.Status = StatusNoTicket
	case w.decodeErr != nil:
		next.Status = StatusMalformed
		next.Err = w.decodeErr
	default:
		tok, err := token.Derive(w.descriptor, now)
		if err != nil {
			next.Status = StatusUnderivable
			next.Err = err
		} else {
			next.Status = StatusReady
			next.Token = tok
		}
	}
	w.state = next

	// only worth a log line when something other than the codes changed
	if next.Status != previous.Status || errText(next.Err) != errText(previous.Err) {
		if next.Err != nil {
			log.Warn("wallet_no_token", zap.Stringer("status", next.Status), zap.Error(next.Err))
		}
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Reports whether err came out of decoding or deriving (as opposed to
// storage), mostly for callers that want to present it.
func IsTicketError(err error) bool {
	var de *ticket.DecodeError
	var te *token.DerivationError
	return errors.As(err, &de) || errors.As(err, &te)
}
