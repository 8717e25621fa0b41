package ticketgimp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"src.goblgobl.com/ticketgimp/barcode"
	"src.goblgobl.com/ticketgimp/codes"
	"src.goblgobl.com/ticketgimp/config"
	"src.goblgobl.com/ticketgimp/log"
	"src.goblgobl.com/ticketgimp/refresh"
	"src.goblgobl.com/ticketgimp/storage"
	"src.goblgobl.com/ticketgimp/tests"
)

func Test_Init(t *testing.T) {
	defer restoreGlobals()()

	raw := tests.Ticket()
	tests.Factory.Value.Insert(TicketKey, raw)

	require.NoError(t, Init(config.Config{
		InstanceId: 3,
		Barcode:    barcode.Config{Size: 128, Recovery: "high"},
	}))

	assert.Equal(t, uint8(3), Config.InstanceId)
	assert.Equal(t, barcode.PDF417{Size: 128, SecurityLevel: 6}, Barcode)
	assert.Equal(t, raw, Active.Raw())
	assert.Equal(t, StatusReady, Active.Current().Status)
}

func Test_Init_InvalidBarcode(t *testing.T) {
	defer restoreGlobals()()

	err := Init(config.Config{Barcode: barcode.Config{Recovery: "max"}})
	assert.Equal(t, codes.ERR_INVALID_BARCODE_RECOVERY, log.ErrorCode(err))
}

func Test_NewScheduler_Interval(t *testing.T) {
	defer restoreGlobals()()

	Config = config.Config{}
	assert.Equal(t, refresh.DefaultInterval, NewScheduler(&Wallet{}).Interval)

	Config.Refresh.IntervalMS = 20
	assert.Equal(t, 20*time.Millisecond, NewScheduler(&Wallet{}).Interval)
}

func Test_Refresh_RecomputesUntilStopped(t *testing.T) {
	defer restoreGlobals()()

	tests.Factory.Value.Insert(TicketKey, tests.Ticket())
	Config = config.Config{Refresh: config.Refresh{IntervalMS: 5}}
	Active = NewWallet(storage.DB)
	require.NoError(t, Active.Load())

	Active.Recompute(time.Unix(0, 0))
	require.Equal(t, int64(0), Active.Current().Token.EpochSeconds)

	// the first sample always fires
	stop := Refresh(context.Background())
	assert.Eventually(t, func() bool {
		return Active.Current().Token.EpochSeconds > 0
	}, time.Second, 5*time.Millisecond)
	stop()

	Active.Recompute(time.Unix(0, 0))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(0), Active.Current().Token.EpochSeconds)
}

func restoreGlobals() func() {
	config, active, encoder := Config, Active, Barcode
	return func() {
		Config, Active, Barcode = config, active, encoder
	}
}
