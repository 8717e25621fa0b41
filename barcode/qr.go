package barcode

import (
	qrcode "github.com/skip2/go-qrcode"
)

type QR struct {
	Size  int
	Level qrcode.RecoveryLevel
}

func (q QR) PNG(text string) ([]byte, error) {
	if text == "" {
		return nil, ErrEmpty
	}
	return qrcode.Encode(text, q.Level, q.Size)
}

func (q QR) Terminal(text string) (string, error) {
	if text == "" {
		return "", ErrEmpty
	}
	code, err := qrcode.New(text, q.Level)
	if err != nil {
		return "", err
	}
	// inverse, light modules on a dark terminal background scan as dark
	return code.ToSmallString(true), nil
}
