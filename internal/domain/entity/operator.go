package entity

// Operator is the console user on whose behalf the loyalty API is called.
// ID is stable for the same token: the token subject when it carries one,
// otherwise a fingerprint of the token. Anonymous operators have ID "anonymous".
type Operator struct {
	ID    string
	Name  string
	Token string
}

const AnonymousOperatorID = "anonymous"

// IsAnonymous reports whether the operator presented no token
func (o Operator) IsAnonymous() bool {
	return o.Token == ""
}
