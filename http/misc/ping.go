package misc

import (
	"fmt"

	"github.com/valyala/fasthttp"

	"src.goblgobl.com/ticketgimp/http/res"
	"src.goblgobl.com/ticketgimp/storage"
)

var resPong = res.OkBytes("application/json", []byte(`{"ok":true}`))

func Ping(conn *fasthttp.RequestCtx) (res.Response, error) {
	if err := storage.DB.Ping(); err != nil {
		return nil, fmt.Errorf("ping store - %w", err)
	}
	return resPong, nil
}
