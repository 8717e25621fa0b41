package tickets

import (
	"src.goblgobl.com/ticketgimp"
	"src.goblgobl.com/ticketgimp/http/res"
)

// Anything longer is certainly not a ticket, and we'd rather not
// store it.
const MaxLength = 4096

type stateResponse struct {
	Status string `json:"status"`
	Ticket string `json:"ticket"`
	Error  string `json:"error,omitempty"`
}

func stateBody(state ticketgimp.State) res.Response {
	body := stateResponse{
		Status: state.Status.String(),
		Ticket: state.Raw,
	}
	if state.Err != nil {
		body.Error = state.Err.Error()
	}
	return res.Ok(body)
}
