package http

/*
Creates a *ticketgimp.Env, the context under which this request will be
processed. This wraps the endpoint action, injecting the env and dealing
with the response.

Two important part of handling the response is to deal with unhandled errors and
writing a log of the request/response.
*/

import (
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"src.goblgobl.com/ticketgimp"
	"src.goblgobl.com/ticketgimp/http/res"
	"src.goblgobl.com/ticketgimp/log"
)

// The action that we'll call is a standard fasthttp action plus our env.
type Next func(conn *fasthttp.RequestCtx, env *ticketgimp.Env) (res.Response, error)

// The routeName is just used for logging, it gives a canonical name to every
// action, which means we won't have to parse/group raw URLs
func envHandler(routeName string, next Next) func(ctx *fasthttp.RequestCtx) {
	return func(conn *fasthttp.RequestCtx) {
		start := time.Now()

		env := ticketgimp.NewEnv()
		conn.Response.Header.Set("RequestId", env.RequestId())

		r, err := next(conn, env)
		if err != nil {
			r = serverError(conn, err, env.Logger)
		}
		r.Write(conn)

		fields := append(r.LogFields(),
			zap.String("route", routeName),
			zap.Int64("ms", time.Since(start).Milliseconds()),
		)
		env.Info("req", fields...)
	}
}

// For actions that don't touch the wallet (ping, info)
func noEnvHandler(routeName string, next func(conn *fasthttp.RequestCtx) (res.Response, error)) func(ctx *fasthttp.RequestCtx) {
	return func(conn *fasthttp.RequestCtx) {
		start := time.Now()

		r, err := next(conn)
		if err != nil {
			r = serverError(conn, err, log.Logger())
		}
		r.Write(conn)

		fields := append(r.LogFields(),
			zap.String("route", routeName),
			zap.Int64("ms", time.Since(start).Milliseconds()),
		)
		log.Info("req", fields...)
	}
}

// We could log the error directly in the req log but this could contain
// sensitive information (a ticket, say). So we log a separate error and tie
// this error to the req log via the errorId.
func serverError(conn *fasthttp.RequestCtx, err error, logger *zap.Logger) res.Response {
	errorId := uuid.NewString()
	conn.Response.Header.Set("Error-Id", errorId)
	logger.Error("handler_err", zap.String("eid", errorId), zap.Error(err))
	return res.GenericServerError
}
