package http

import (
	"fmt"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"src.goblgobl.com/ticketgimp"
	"src.goblgobl.com/ticketgimp/codes"
	"src.goblgobl.com/ticketgimp/http/misc"
	"src.goblgobl.com/ticketgimp/http/res"
	"src.goblgobl.com/ticketgimp/http/tickets"
	"src.goblgobl.com/ticketgimp/http/tokens"
	"src.goblgobl.com/ticketgimp/log"
)

var resNotFoundPath = res.StaticNotFound(codes.RES_UNKNOWN_ROUTE)

// Blocks until the server fails (a port already in use, say). The
// caller owns shutdown, so the error is returned rather than exiting.
func Listen() error {
	return listen(ticketgimp.Config.HTTP.Listen)
}

func listen(address string) error {
	if address == "" {
		address = "127.0.0.1:5200"
	}

	log.Info("server_listening", zap.String("address", address))

	fast := fasthttp.Server{
		Handler:                      handler(),
		NoDefaultContentType:         true,
		NoDefaultServerHeader:        true,
		SecureErrorLogMessage:        true,
		DisablePreParseMultipartForm: true,
	}
	err := fast.ListenAndServe(address)
	log.Error("http_server_error", zap.Error(err), zap.String("address", address))
	return fmt.Errorf("http.Listen %s - %w", address, err)
}

func handler() func(ctx *fasthttp.RequestCtx) {
	r := router.New()
	// misc routes
	r.GET("/v1/ping", noEnvHandler("ping", misc.Ping))
	r.GET("/v1/info", noEnvHandler("info", misc.Info))

	r.GET("/v1/ticket", envHandler("ticket_get", tickets.Get))
	r.POST("/v1/ticket", envHandler("ticket_set", tickets.Set))

	r.GET("/v1/token", envHandler("token_get", tokens.Get))
	r.GET("/v1/token.png", envHandler("token_png", tokens.Png))

	// catch all
	r.NotFound = func(ctx *fasthttp.RequestCtx) {
		resNotFoundPath.Write(ctx)
	}

	return r.Handler
}
