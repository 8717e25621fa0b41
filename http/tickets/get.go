package tickets

import (
	"github.com/valyala/fasthttp"

	"src.goblgobl.com/ticketgimp"
	"src.goblgobl.com/ticketgimp/http/res"
)

func Get(conn *fasthttp.RequestCtx, env *ticketgimp.Env) (res.Response, error) {
	return stateBody(env.Wallet.Current()), nil
}
