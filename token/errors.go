package token

type Key string

const (
	KeyEvent    Key = "event"
	KeyCustomer Key = "customer"
)

type DerivationError struct {
	Key Key
	Err error
}

func (e *DerivationError) Error() string {
	return "token: " + string(e.Key) + " code - " + e.Err.Error()
}

func (e *DerivationError) Unwrap() error {
	return e.Err
}
