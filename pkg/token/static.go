package token

// Static is a Provider wrapper for a fixed token value.
type Static struct {
	token string
}

func NewStatic(token string) *Static {
	return &Static{token: token}
}

func (t *Static) Token() string {
	return t.token
}
