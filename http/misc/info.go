package misc

import (
	"fmt"
	"runtime"

	"github.com/valyala/fasthttp"

	"src.goblgobl.com/ticketgimp/http/res"
	"src.goblgobl.com/ticketgimp/storage"
)

// set at build time: -ldflags "-X src.goblgobl.com/ticketgimp/http/misc.commit=..."
var commit = "dev"

func Info(conn *fasthttp.RequestCtx) (res.Response, error) {
	storageInfo, err := storage.DB.Info()
	if err != nil {
		return nil, fmt.Errorf("storage info - %w", err)
	}

	return res.Ok(struct {
		Go      string `json:"go"`
		Commit  string `json:"commit"`
		Storage any    `json:"storage"`
	}{
		Commit:  commit,
		Go:      runtime.Version(),
		Storage: storageInfo,
	}), nil
}
