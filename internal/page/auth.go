package page

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/idilsaglam/lostfound/internal/api"
	"github.com/idilsaglam/lostfound/internal/form"
	"github.com/idilsaglam/lostfound/internal/model"
)

const (
	FallbackLogin  = "Login failed. Check your details."
	FallbackSignup = "Sign-up failed. Please try again."
)

// AuthClient is the part of the API the auth pages need.
type AuthClient interface {
	Login(ctx context.Context, req model.LoginRequest) (*api.LoginResult, error)
	Signup(ctx context.Context, req model.SignupRequest) (json.RawMessage, error)
}

// SessionWriter records a successful login.
type SessionWriter interface {
	Login(email string) error
	LoginWithToken(email, token string) error
}

type Login struct {
	auth    AuthClient
	session SessionWriter
	log     *zap.Logger
}

func NewLogin(auth AuthClient, session SessionWriter, log *zap.Logger) *Login {
	return &Login{auth: auth, session: session, log: nilSafe(log)}
}

// Submit validates locally, calls the API, and on any 2xx remembers the
// submitted email. A token is stored too when the server sent one.
func (p *Login) Submit(ctx context.Context, f form.LoginForm) (Outcome, error) {
	if err := f.Validate(); err != nil {
		return Outcome{}, err
	}
	res, err := p.auth.Login(ctx, model.LoginRequest{Email: f.Email, Password: f.Password})
	if err != nil {
		p.log.Info("login rejected", zap.String("email", f.Email), zap.Error(err))
		return Outcome{}, fmt.Errorf("login: %w", err)
	}
	if res != nil && res.AccessToken != "" {
		err = p.session.LoginWithToken(f.Email, res.AccessToken)
	} else {
		err = p.session.Login(f.Email)
	}
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Navigate: RouteHome, Notice: "Logged in."}, nil
}

type Signup struct {
	auth AuthClient
	log  *zap.Logger
}

func NewSignup(auth AuthClient, log *zap.Logger) *Signup {
	return &Signup{auth: auth, log: nilSafe(log)}
}

func (p *Signup) Submit(ctx context.Context, f form.SignupForm) (Outcome, error) {
	if err := f.Validate(); err != nil {
		return Outcome{}, err
	}
	_, err := p.auth.Signup(ctx, model.SignupRequest{Email: f.Email, Password: f.Password, Name: f.Name})
	if err != nil {
		p.log.Info("signup rejected", zap.String("email", f.Email), zap.Error(err))
		return Outcome{}, fmt.Errorf("signup: %w", err)
	}
	return Outcome{Navigate: RouteLogin, Notice: "Signed up! Please log in."}, nil
}

// TokenRevoker is the server side of logout.
type TokenRevoker interface {
	Logout(ctx context.Context) error
}

// SessionCloser is the local side of logout.
type SessionCloser interface {
	Token() string
	Logout() error
}

type Logout struct {
	auth    TokenRevoker
	session SessionCloser
	log     *zap.Logger
}

func NewLogout(auth TokenRevoker, session SessionCloser, log *zap.Logger) *Logout {
	return &Logout{auth: auth, session: session, log: nilSafe(log)}
}

// Submit revokes the server token when one is held, then always clears the
// local session. A failed revoke is logged, not returned.
func (p *Logout) Submit(ctx context.Context) error {
	if p.session.Token() != "" {
		if err := p.auth.Logout(ctx); err != nil {
			p.log.Warn("server logout failed", zap.Error(err))
		}
	}
	return p.session.Logout()
}

func nilSafe(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
