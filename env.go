package ticketgimp

/*
The environment of a single request. Loaded via the EnvHandler middleware.
*/

import (
	"encoding/base64"
	"encoding/binary"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"src.goblgobl.com/ticketgimp/barcode"
	"src.goblgobl.com/ticketgimp/log"
)

// While we make no guarantees about the uniqueness of the requestId, there's
// no reason we can't help things out a little.
var requestId = uint32(time.Now().Unix())

type Env struct {
	// Every time we get an env, we assign it a RequestId. This is essentially
	// an incrementing integer. It can wrap and we can have duplicates
	// but generally, over a reasonable window, it should be unique.
	requestId string

	Wallet  *Wallet
	Barcode barcode.Encoder

	// Anything logged with this logger will automatically have the
	// rid (request id) field
	Logger *zap.Logger
}

func NewEnv() *Env {
	rid := NextRequestId()
	return &Env{
		requestId: rid,
		Wallet:    Active,
		Barcode:   Barcode,
		Logger:    log.Logger().With(zap.String("rid", rid)),
	}
}

func NextRequestId() string {
	return encodeRequestId(atomic.AddUint32(&requestId, 1), Config.InstanceId)
}

func (e *Env) RequestId() string {
	return e.requestId
}

func (e *Env) Info(ctx string, fields ...zap.Field) {
	e.Logger.Info(ctx, fields...)
}

func (e *Env) Warn(ctx string, fields ...zap.Field) {
	e.Logger.Warn(ctx, fields...)
}

func (e *Env) Error(ctx string, fields ...zap.Field) {
	e.Logger.Error(ctx, fields...)
}

// 4 bytes of counter followed by the instance id, so that two
// instances behind the same proxy don't hand out the same ids
func encodeRequestId(id uint32, instanceId uint8) string {
	var buf [5]byte
	binary.BigEndian.PutUint32(buf[:4], id)
	buf[4] = instanceId
	return base64.RawURLEncoding.EncodeToString(buf[:])
}
