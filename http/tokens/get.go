package tokens

import (
	"encoding/base64"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"src.goblgobl.com/ticketgimp"
	"src.goblgobl.com/ticketgimp/http/res"
)

func Get(conn *fasthttp.RequestCtx, env *ticketgimp.Env) (res.Response, error) {
	state := env.Wallet.Current()
	if state.Status != ticketgimp.StatusReady {
		return noToken(state), nil
	}

	text := state.Text()
	png, err := cache.get(env.Barcode, text)
	if err != nil {
		env.Error("tokens_get_barcode", zap.Error(err))
		return resBarcodeFailed, nil
	}

	tok := state.Token
	return res.Ok(struct {
		Token   string `json:"token"`
		Window  int64  `json:"window"`
		Expires int64  `json:"expires"`
		QR      string `json:"qr"`
	}{
		Token:   text,
		Window:  tok.Window,
		Expires: tok.Expires().Unix(),
		QR:      base64.StdEncoding.EncodeToString(png),
	}), nil
}

func Png(conn *fasthttp.RequestCtx, env *ticketgimp.Env) (res.Response, error) {
	state := env.Wallet.Current()
	if state.Status != ticketgimp.StatusReady {
		return noToken(state), nil
	}

	png, err := cache.get(env.Barcode, state.Text())
	if err != nil {
		env.Error("tokens_png_barcode", zap.Error(err))
		return resBarcodeFailed, nil
	}
	conn.Response.Header.Set("Cache-Control", "no-store")
	return res.Png(png), nil
}
