package form

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/lostfound/internal/api"
)

func TestLoginValidate(t *testing.T) {
	tests := []struct {
		name string
		form LoginForm
		want string
	}{
		{"ok", LoginForm{Email: "a@b.com", Password: "pw12"}, ""},
		{"no email", LoginForm{Password: "pw12"}, MsgLoginRequired},
		{"no password", LoginForm{Email: "a@b.com"}, MsgLoginRequired},
		{"blank email", LoginForm{Email: "   ", Password: "pw12"}, MsgLoginRequired},
		{"padded email passes", LoginForm{Email: " a@b.com ", Password: "pw12"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.form.Validate(), "fallback"))
		})
	}
}

func TestSignupValidate(t *testing.T) {
	tests := []struct {
		name string
		form SignupForm
		want string
	}{
		{"ok", SignupForm{Email: "a@b.com", Password: "pw12", Name: "Ann"}, ""},
		{"empty name", SignupForm{Email: "a@b.com", Password: "pw12"}, MsgSignupRequired},
		{"empty email", SignupForm{Password: "pw12", Name: "Ann"}, MsgSignupRequired},
		{"blank name", SignupForm{Email: "a@b.com", Password: "pw12", Name: " \t"}, MsgSignupRequired},
		{"short password", SignupForm{Email: "a@b.com", Password: "pw1", Name: "Ann"}, MsgPasswordShort},
		{"multibyte counts runes", SignupForm{Email: "a@b.com", Password: "비밀번호", Name: "Ann"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.form.Validate(), "fallback"))
		})
	}
}

func TestPasswordValidate(t *testing.T) {
	assert.NoError(t, PasswordForm{Current: "old1", New: "new1", Confirm: "new1"}.Validate())
	assert.Equal(t, MsgPasswordFields, Message(PasswordForm{New: "new1", Confirm: "new1"}.Validate(), ""))
	assert.Equal(t, MsgPasswordMatch, Message(PasswordForm{Current: "old1", New: "new1", Confirm: "new2"}.Validate(), ""))
	assert.Equal(t, MsgPasswordShort, Message(PasswordForm{Current: "old1", New: "abc", Confirm: "abc"}.Validate(), ""))
}

func TestMessagePrefersServer(t *testing.T) {
	apiErr := &api.Error{Status: 409, Message: "email taken"}
	assert.Equal(t, "email taken", Message(fmt.Errorf("signup: %w", apiErr), "fallback"))
	assert.Equal(t, "fallback", Message(&api.Error{Status: 500}, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("dial tcp: refused"), "fallback"))
	assert.Equal(t, "", Message(nil, "fallback"))
}

func TestStateLifecycle(t *testing.T) {
	var s State
	s.Err = "old"
	assert.True(t, s.Begin())
	assert.Empty(t, s.Err)
	assert.False(t, s.Begin(), "second submit while loading")

	s.Finish(&api.Error{Status: 401, Message: "bad credentials"}, "fallback")
	assert.False(t, s.Loading)
	assert.Equal(t, "bad credentials", s.Err)

	assert.True(t, s.Begin())
	s.Finish(nil, "fallback")
	assert.Empty(t, s.Err)
}

func TestReportFormTrim(t *testing.T) {
	f := ReportForm{Title: " Wallet ", Place: "\tLibrary\n"}.Trim()
	assert.Equal(t, "Wallet", f.Title)
	assert.Equal(t, "Library", f.Place)
}
