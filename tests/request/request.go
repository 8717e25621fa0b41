package request

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"src.goblgobl.com/ticketgimp"
	"src.goblgobl.com/ticketgimp/codes"
	"src.goblgobl.com/ticketgimp/http/res"
)

type Request struct {
	t    *testing.T
	env  *ticketgimp.Env
	conn *fasthttp.RequestCtx
}

func Req(t *testing.T) *Request {
	return &Request{t: t, conn: &fasthttp.RequestCtx{}}
}

// A request for an env-aware action
func ReqT(t *testing.T, env *ticketgimp.Env) *Request {
	r := Req(t)
	r.env = env
	return r
}

// strings and []byte are sent as-is, anything else is json encoded
func (r *Request) Body(body any) *Request {
	switch b := body.(type) {
	case string:
		r.conn.Request.SetBodyString(b)
	case []byte:
		r.conn.Request.SetBody(b)
	default:
		encoded, err := json.Marshal(b)
		require.NoError(r.t, err)
		r.conn.Request.SetBody(encoded)
	}
	return r
}

func (r *Request) Conn() *fasthttp.RequestCtx {
	return r.conn
}

func (r *Request) Get(action func(*fasthttp.RequestCtx, *ticketgimp.Env) (res.Response, error)) *Response {
	r.conn.Request.Header.SetMethod("GET")
	return r.run(action)
}

func (r *Request) Post(action func(*fasthttp.RequestCtx, *ticketgimp.Env) (res.Response, error)) *Response {
	r.conn.Request.Header.SetMethod("POST")
	return r.run(action)
}

func (r *Request) run(action func(*fasthttp.RequestCtx, *ticketgimp.Env) (res.Response, error)) *Response {
	response, err := action(r.conn, r.env)
	require.NoError(r.t, err)
	response.Write(r.conn)
	return Res(r.t, r.conn)
}

type Response struct {
	t           *testing.T
	Status      int
	Body        string
	Bytes       []byte
	ContentType string
	JSON        map[string]any
}

func Res(t *testing.T, conn *fasthttp.RequestCtx) *Response {
	body := conn.Response.Body()
	r := &Response{
		t:           t,
		Status:      conn.Response.StatusCode(),
		Body:        string(body),
		Bytes:       append([]byte(nil), body...),
		ContentType: string(conn.Response.Header.ContentType()),
	}
	if r.ContentType == "application/json" && len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &r.JSON))
	}
	return r
}

func (r *Response) OK() *Response {
	return r.ExpectStatus(200)
}

func (r *Response) ExpectStatus(status int) *Response {
	r.t.Helper()
	assert.Equal(r.t, status, r.Status, r.Body)
	return r
}

func (r *Response) ExpectCode(status int, code int) *Response {
	r.t.Helper()
	r.ExpectStatus(status)
	assert.Equal(r.t, float64(code), r.JSON["code"], r.Body)
	return r
}

func (r *Response) ExpectInvalid(code int) *Response {
	return r.ExpectCode(400, code)
}

// pairs of field name and validation code
func (r *Response) ExpectValidation(fieldCodes ...any) *Response {
	r.t.Helper()
	r.ExpectInvalid(codes.RES_VALIDATION)
	invalid, _ := r.JSON["invalid"].([]any)
	assert.Len(r.t, invalid, len(fieldCodes)/2, r.Body)
	for i := 0; i < len(fieldCodes); i += 2 {
		found := false
		for _, inv := range invalid {
			m := inv.(map[string]any)
			if m["field"] == fieldCodes[i] && m["code"] == float64(fieldCodes[i+1].(int)) {
				found = true
				break
			}
		}
		assert.True(r.t, found, "expected %v to be invalid with %v - %s", fieldCodes[i], fieldCodes[i+1], r.Body)
	}
	return r
}
