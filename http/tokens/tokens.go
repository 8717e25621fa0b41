package tokens

import (
	"sync"

	"src.goblgobl.com/ticketgimp"
	"src.goblgobl.com/ticketgimp/barcode"
	"src.goblgobl.com/ticketgimp/codes"
	"src.goblgobl.com/ticketgimp/http/res"
)

var resBarcodeFailed = res.StaticError(500, codes.RES_BARCODE_FAILED, "failed to generate barcode")

func noToken(state ticketgimp.State) res.Response {
	extra := map[string]any{"status": state.Status.String()}
	if state.Err != nil {
		extra["reason"] = state.Err.Error()
	}
	return res.Error(404, codes.RES_NO_TOKEN, "no token available", extra)
}

// The token only changes once a window, but it can be requested many
// times a second. Remembers the last image. Keyed on the text alone,
// a process only ever has the one encoder.
type pngCache struct {
	mu   sync.Mutex
	text string
	png  []byte
}

var cache pngCache

func (c *pngCache) get(encoder barcode.Encoder, text string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.png != nil && c.text == text {
		return c.png, nil
	}

	png, err := encoder.PNG(text)
	if err != nil {
		return nil, err
	}
	c.text = text
	c.png = png
	return png, nil
}
