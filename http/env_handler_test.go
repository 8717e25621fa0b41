package http

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"src.goblgobl.com/ticketgimp"
	"src.goblgobl.com/ticketgimp/codes"
	"src.goblgobl.com/ticketgimp/http/res"
	"src.goblgobl.com/ticketgimp/storage"
	"src.goblgobl.com/ticketgimp/tests"
	"src.goblgobl.com/ticketgimp/tests/request"
)

func init() {
	ticketgimp.Active = ticketgimp.NewWallet(storage.DB)
	if err := ticketgimp.Active.Load(); err != nil {
		panic(err)
	}
}

func Test_EnvHandler_CallsHandlerWithWallet(t *testing.T) {
	conn := request.Req(t).Conn()
	envHandler("", func(conn *fasthttp.RequestCtx, env *ticketgimp.Env) (res.Response, error) {
		assert.Same(t, ticketgimp.Active, env.Wallet)
		return res.Ok(map[string]int{"over": 9000}), nil
	})(conn)

	r := request.Res(t, conn).OK()
	assert.Equal(t, float64(9000), r.JSON["over"])
}

func Test_EnvHandler_RequestId(t *testing.T) {
	conn := request.Req(t).Conn()

	var id1, id2 string
	envHandler("", func(conn *fasthttp.RequestCtx, env *ticketgimp.Env) (res.Response, error) {
		id1 = env.RequestId()
		return res.Ok(nil), nil
	})(conn)
	assert.Equal(t, id1, string(conn.Response.Header.Peek("RequestId")))

	envHandler("", func(conn *fasthttp.RequestCtx, env *ticketgimp.Env) (res.Response, error) {
		id2 = env.RequestId()
		return res.Ok(nil), nil
	})(conn)

	assert.Len(t, id1, 7)
	assert.Len(t, id2, 7)
	assert.NotEqual(t, id1, id2)
}

func Test_EnvHandler_LogsResponse(t *testing.T) {
	var requestId string
	conn := request.Req(t).Conn()

	logged := tests.CaptureLog(zapcore.InfoLevel, func() {
		envHandler("test-route", func(conn *fasthttp.RequestCtx, env *ticketgimp.Env) (res.Response, error) {
			requestId = env.RequestId()
			return res.StaticNotFound(9001), nil
		})(conn)
	})

	assert.Len(t, logged, 1)
	reqLog := logged[0].ContextMap()
	assert.Equal(t, "req", logged[0].Message)
	assert.Equal(t, requestId, reqLog["rid"])
	assert.Equal(t, "test-route", reqLog["route"])
	assert.Equal(t, int64(404), reqLog["status"])
	assert.Equal(t, int64(9001), reqLog["code"])
	assert.Equal(t, int64(33), reqLog["res"])
}

func Test_EnvHandler_LogsError(t *testing.T) {
	var requestId string
	conn := request.Req(t).Conn()

	logged := tests.CaptureLog(zapcore.InfoLevel, func() {
		envHandler("test2", func(conn *fasthttp.RequestCtx, env *ticketgimp.Env) (res.Response, error) {
			requestId = env.RequestId()
			return nil, errors.New("Not Over 9000!")
		})(conn)
	})

	request.Res(t, conn).ExpectCode(500, codes.RES_SERVER_ERROR)
	errorId := string(conn.Response.Header.Peek("Error-Id"))
	assert.Len(t, errorId, 36)

	assert.Len(t, logged, 2)
	errLog := logged[0]
	assert.Equal(t, zap.ErrorLevel, errLog.Level)
	assert.Equal(t, "handler_err", errLog.Message)
	assert.Equal(t, requestId, errLog.ContextMap()["rid"])
	assert.Equal(t, errorId, errLog.ContextMap()["eid"])
	assert.Equal(t, "Not Over 9000!", errLog.ContextMap()["error"])

	reqLog := logged[1].ContextMap()
	assert.Equal(t, "test2", reqLog["route"])
	assert.Equal(t, int64(500), reqLog["status"])
	// the error itself stays out of the request log
	assert.Nil(t, reqLog["error"])
}

func Test_NoEnvHandler_Error(t *testing.T) {
	conn := request.Req(t).Conn()
	tests.CaptureLog(zapcore.InfoLevel, func() {
		noEnvHandler("x", func(conn *fasthttp.RequestCtx) (res.Response, error) {
			return nil, errors.New("fail")
		})(conn)
	})
	request.Res(t, conn).ExpectCode(500, codes.RES_SERVER_ERROR)
	assert.Len(t, string(conn.Response.Header.Peek("Error-Id")), 36)
}
