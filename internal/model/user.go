package model

// SessionUser is the locally remembered identity of the signed-in user.
// Token is only set when the server issued one at login.
type SessionUser struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Token string `json:"token,omitempty"`
}

// Equal reports whether u and o hold the same fields. Two nil users are equal.
func (u *SessionUser) Equal(o *SessionUser) bool {
	if u == nil || o == nil {
		return u == o
	}
	return *u == *o
}
