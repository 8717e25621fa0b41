// Package barcode turns a signed token into something a scanner can read.
// PDF417 is what venue scanners expect; QR is kept for phones.
package barcode

import (
	"errors"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"src.goblgobl.com/ticketgimp/codes"
	"src.goblgobl.com/ticketgimp/log"
)

const DefaultSize = 256

var ErrEmpty = errors.New("barcode: nothing to encode")

type Encoder interface {
	// PNG image, roughly Size pixels wide
	PNG(text string) ([]byte, error)

	// Half-block characters, two pixel rows per line, for terminals
	Terminal(text string) (string, error)
}

type Config struct {
	// pdf417 (default) or qr
	Type     string `json:"type" yaml:"type"`
	Size     int    `json:"size" yaml:"size"`
	Recovery string `json:"recovery" yaml:"recovery"`
}

func New(config Config) (Encoder, error) {
	size := config.Size
	if size == 0 {
		size = DefaultSize
	}

	recovery := strings.ToLower(config.Recovery)
	switch strings.ToLower(config.Type) {
	case "", "pdf417":
		level, ok := pdf417Levels[recovery]
		if !ok {
			return nil, invalidRecovery()
		}
		return PDF417{Size: size, SecurityLevel: level}, nil
	case "qr":
		level, ok := qrLevels[recovery]
		if !ok {
			return nil, invalidRecovery()
		}
		return QR{Size: size, Level: level}, nil
	}
	return nil, log.Errf(codes.ERR_INVALID_BARCODE_TYPE, "barcode.type is invalid. Should be one of: pdf417, qr")
}

var qrLevels = map[string]qrcode.RecoveryLevel{
	"":        qrcode.Medium,
	"low":     qrcode.Low,
	"medium":  qrcode.Medium,
	"high":    qrcode.High,
	"highest": qrcode.Highest,
}

// PDF417 security levels run 0-8
var pdf417Levels = map[string]byte{
	"":        4,
	"low":     2,
	"medium":  4,
	"high":    6,
	"highest": 8,
}

func invalidRecovery() error {
	return log.Errf(codes.ERR_INVALID_BARCODE_RECOVERY, "barcode.recovery is invalid. Should be one of: low, medium, high, highest")
}
