package res

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap/zapcore"
)

func Test_Ok(t *testing.T) {
	conn := &fasthttp.RequestCtx{}
	Ok(map[string]any{"over": 9000}).Write(conn)
	assert.Equal(t, 200, conn.Response.StatusCode())
	assert.Equal(t, "application/json", string(conn.Response.Header.ContentType()))
	assert.Equal(t, `{"over":9000}`, string(conn.Response.Body()))
}

func Test_Png(t *testing.T) {
	conn := &fasthttp.RequestCtx{}
	Png([]byte{1, 2, 3}).Write(conn)
	assert.Equal(t, 200, conn.Response.StatusCode())
	assert.Equal(t, "image/png", string(conn.Response.Header.ContentType()))
	assert.Equal(t, []byte{1, 2, 3}, conn.Response.Body())
}

func Test_StaticError(t *testing.T) {
	conn := &fasthttp.RequestCtx{}
	r := StaticError(409, 1234, "conflict")
	r.Write(conn)
	assert.Equal(t, 409, conn.Response.StatusCode())
	assert.JSONEq(t, `{"code":1234,"error":"conflict"}`, string(conn.Response.Body()))

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range r.LogFields() {
		f.AddTo(enc)
	}
	assert.Equal(t, int64(409), enc.Fields["status"])
	assert.Equal(t, int64(1234), enc.Fields["code"])
}

func Test_Error_Extra(t *testing.T) {
	conn := &fasthttp.RequestCtx{}
	Error(404, 55, "missing", map[string]any{"status": "malformed", "code": 1}).Write(conn)
	assert.Equal(t, 404, conn.Response.StatusCode())
	// code and error always win over extra
	assert.JSONEq(t, `{"code":55,"error":"missing","status":"malformed"}`, string(conn.Response.Body()))
}

func Test_Validation(t *testing.T) {
	conn := &fasthttp.RequestCtx{}
	Validation(Invalid{Field: "ticket", Code: 7, Error: "required"}).Write(conn)
	assert.Equal(t, 400, conn.Response.StatusCode())
	assert.JSONEq(t, `{
		"code": 101003,
		"error": "invalid data",
		"invalid": [{"field": "ticket", "code": 7, "error": "required"}]
	}`, string(conn.Response.Body()))
}
