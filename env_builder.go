//go:build !release

// Used as a factory for tests only

package ticketgimp

import (
	"time"

	"go.uber.org/zap"

	"src.goblgobl.com/ticketgimp/barcode"
)

type EnvBuilder struct {
	wallet  *Wallet
	encoder barcode.Encoder
	logger  *zap.Logger
}

func BuildEnv() *EnvBuilder {
	return &EnvBuilder{}
}

func (eb *EnvBuilder) Wallet(wallet *Wallet) *EnvBuilder {
	eb.wallet = wallet
	return eb
}

func (eb *EnvBuilder) Barcode(encoder barcode.Encoder) *EnvBuilder {
	eb.encoder = encoder
	return eb
}

func (eb *EnvBuilder) Logger(logger *zap.Logger) *EnvBuilder {
	eb.logger = logger
	return eb
}

func (eb *EnvBuilder) Env() *Env {
	wallet := eb.wallet
	if wallet == nil {
		wallet = Active
	}

	encoder := eb.encoder
	if encoder == nil {
		encoder = barcode.QR{Size: barcode.DefaultSize}
	}

	logger := eb.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Env{
		requestId: NextRequestId(),
		Wallet:    wallet,
		Barcode:   encoder,
		Logger:    logger,
	}
}

// Lets tests derive at a fixed instant.
func (w *Wallet) SetNow(now func() time.Time) *Wallet {
	w.now = now
	return w
}
