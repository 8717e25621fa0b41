package tickets

import (
	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"src.goblgobl.com/ticketgimp"
	"src.goblgobl.com/ticketgimp/codes"
	"src.goblgobl.com/ticketgimp/http/res"
)

var (
	invalidRequired = res.Invalid{Field: "ticket", Code: codes.VAL_REQUIRED, Error: "required"}
	invalidType     = res.Invalid{Field: "ticket", Code: codes.VAL_STRING_TYPE, Error: "must be a string"}
	invalidLength   = res.Invalid{
		Field: "ticket",
		Code:  codes.VAL_STRING_LENGTH,
		Error: "must be no more than 4096 characters",
		Data:  map[string]int{"max": MaxLength},
	}
)

// Stores whatever ticket it's given, even one that doesn't decode: that's
// still what the user entered, and the response tells them the status.
func Set(conn *fasthttp.RequestCtx, env *ticketgimp.Env) (res.Response, error) {
	var input map[string]any
	if err := json.Unmarshal(conn.PostBody(), &input); err != nil || input == nil {
		return res.InvalidJSON, nil
	}

	value, exists := input["ticket"]
	if !exists || value == nil {
		return res.Validation(invalidRequired), nil
	}

	raw, ok := value.(string)
	if !ok {
		return res.Validation(invalidType), nil
	}

	if len(raw) > MaxLength {
		return res.Validation(invalidLength), nil
	}

	if err := env.Wallet.Save(raw); err != nil {
		return nil, err
	}

	state := env.Wallet.Current()
	env.Info("ticket_set", zap.Stringer("status", state.Status))
	return stateBody(state), nil
}
