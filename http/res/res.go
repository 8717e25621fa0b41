package res

import (
	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"src.goblgobl.com/ticketgimp/codes"
	"src.goblgobl.com/ticketgimp/log"
)

var (
	GenericServerError = StaticError(500, codes.RES_SERVER_ERROR, "internal server error")
	InvalidJSON        = StaticError(400, codes.RES_INVALID_JSON, "invalid JSON")
)

type Response interface {
	Write(conn *fasthttp.RequestCtx)

	// Fields added to the request log line
	LogFields() []zap.Field
}

type NormalResponse struct {
	status      int
	code        int
	body        []byte
	contentType string
}

func (r NormalResponse) Write(conn *fasthttp.RequestCtx) {
	conn.SetStatusCode(r.status)
	conn.SetContentType(r.contentType)
	conn.SetBody(r.body)
}

func (r NormalResponse) LogFields() []zap.Field {
	fields := []zap.Field{zap.Int("status", r.status), zap.Int("res", len(r.body))}
	if r.code != 0 {
		fields = append(fields, zap.Int("code", r.code))
	}
	return fields
}

func Ok(data any) Response {
	body, err := json.Marshal(data)
	if err != nil {
		log.Error("res_ok_marshal", zap.Error(err))
		return GenericServerError
	}
	return NormalResponse{status: 200, body: body, contentType: "application/json"}
}

func OkBytes(contentType string, body []byte) Response {
	return NormalResponse{status: 200, body: body, contentType: contentType}
}

func Png(body []byte) Response {
	return OkBytes("image/png", body)
}

// An error response who's body is known upfront.
func StaticError(status int, code int, message string) Response {
	body, err := json.Marshal(struct {
		Code  int    `json:"code"`
		Error string `json:"error"`
	}{
		Code:  code,
		Error: message,
	})
	if err != nil {
		panic(err)
	}
	return NormalResponse{status: status, code: code, body: body, contentType: "application/json"}
}

func StaticNotFound(code int) Response {
	return StaticError(404, code, "not found")
}

// An error response with extra fields next to code and error.
func Error(status int, code int, message string, extra map[string]any) Response {
	data := make(map[string]any, len(extra)+2)
	for k, v := range extra {
		data[k] = v
	}
	data["code"] = code
	data["error"] = message

	body, err := json.Marshal(data)
	if err != nil {
		log.Error("res_error_marshal", zap.Error(err))
		return GenericServerError
	}
	return NormalResponse{status: status, code: code, body: body, contentType: "application/json"}
}

type Invalid struct {
	Field string `json:"field"`
	Code  int    `json:"code"`
	Error string `json:"error"`
	Data  any    `json:"data,omitempty"`
}

func Validation(invalid ...Invalid) Response {
	return Error(400, codes.RES_VALIDATION, "invalid data", map[string]any{"invalid": invalid})
}
