package ticketgimp

import (
	"context"
	"time"

	"go.uber.org/zap"

	"src.goblgobl.com/ticketgimp/barcode"
	"src.goblgobl.com/ticketgimp/config"
	"src.goblgobl.com/ticketgimp/log"
	"src.goblgobl.com/ticketgimp/refresh"
	"src.goblgobl.com/ticketgimp/storage"
)

var (
	Config  config.Config
	Active  *Wallet
	Barcode barcode.Encoder
)

// Expects storage to already be configured (config.Configure does that).
// Loads the stored ticket, but doesn't start refreshing; see Refresh.
func Init(config config.Config) error {
	Config = config

	encoder, err := barcode.New(config.Barcode)
	if err != nil {
		return err
	}
	Barcode = encoder

	wallet := NewWallet(storage.DB)
	if err := wallet.Load(); err != nil {
		return err
	}
	Active = wallet
	return nil
}

// A scheduler that recomputes the active wallet's token whenever the
// token window moves. The caller runs it (Run) and stops it (Stop).
func NewScheduler(wallet *Wallet) *refresh.Scheduler {
	scheduler := refresh.New(wallet.Recompute)
	if ms := Config.Refresh.IntervalMS; ms > 0 {
		scheduler.Interval = time.Duration(ms) * time.Millisecond
	}
	return scheduler
}

// Starts the scheduler for the active wallet in the background. The
// returned function stops it and waits for the loop to exit.
func Refresh(ctx context.Context) func() {
	scheduler := NewScheduler(Active)
	done := make(chan struct{})
	go func() {
		defer close(done)
		scheduler.Run(ctx)
	}()

	log.Info("refresh_start", zap.Duration("interval", scheduler.Interval))
	return func() {
		// stop first, nothing may recompute once teardown begins
		scheduler.Stop()
		<-done
	}
}
