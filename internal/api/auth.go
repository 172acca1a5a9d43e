package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/idilsaglam/lostfound/internal/model"
)

type AuthAPI struct {
	c *Client
}

// LoginResult carries the raw body and, when the server issued one, the
// access token.
type LoginResult struct {
	Raw         json.RawMessage
	AccessToken string
	TokenType   string
	ExpiresIn   int64
}

// EmailCheck is the answer of GET /api/auth/check-email.
type EmailCheck struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// Profile is the user returned by GET /api/auth/me.
type Profile struct {
	ID    json.Number `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Phone string      `json:"phone,omitempty"`
}

// Signup registers a user. The response body is opaque to the client.
func (a *AuthAPI) Signup(ctx context.Context, req model.SignupRequest) (json.RawMessage, error) {
	raw, err := a.c.do(ctx, http.MethodPost, "/api/auth/signup", req)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (a *AuthAPI) Login(ctx context.Context, req model.LoginRequest) (*LoginResult, error) {
	raw, err := a.c.do(ctx, http.MethodPost, "/api/auth/login", req)
	if err != nil {
		return nil, err
	}
	res := &LoginResult{Raw: raw}
	var tok struct {
		AccessToken string `json:"accessToken"`
		TokenType   string `json:"tokenType"`
		ExpiresIn   int64  `json:"expiresIn"`
	}
	// any 2xx is a success; the token is a bonus when present
	if json.Unmarshal(unwrap(raw), &tok) == nil {
		res.AccessToken, res.TokenType, res.ExpiresIn = tok.AccessToken, tok.TokenType, tok.ExpiresIn
	}
	return res, nil
}

func (a *AuthAPI) CheckEmail(ctx context.Context, email string) (*EmailCheck, error) {
	raw, err := a.c.do(ctx, http.MethodGet, "/api/auth/check-email?email="+url.QueryEscape(email), nil)
	if err != nil {
		return nil, err
	}
	var out EmailCheck
	if err := json.Unmarshal(unwrap(raw), &out); err != nil {
		return nil, fmt.Errorf("decode check-email: %w", err)
	}
	return &out, nil
}

// Me needs a bearer token; without one the server answers 401.
func (a *AuthAPI) Me(ctx context.Context) (*Profile, error) {
	raw, err := a.c.do(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	var out Profile
	if err := json.Unmarshal(unwrap(raw), &out); err != nil {
		return nil, fmt.Errorf("decode me: %w", err)
	}
	return &out, nil
}

// Logout revokes the current bearer token server-side.
func (a *AuthAPI) Logout(ctx context.Context) error {
	_, err := a.c.do(ctx, http.MethodPost, "/api/auth/logout", nil)
	return err
}

// UpdateMe changes the signed-in user's name and phone. Needs a bearer token.
func (a *AuthAPI) UpdateMe(ctx context.Context, req model.UpdateProfileRequest) (*Profile, error) {
	raw, err := a.c.do(ctx, http.MethodPut, "/api/auth/me", req)
	if err != nil {
		return nil, err
	}
	var out Profile
	if err := json.Unmarshal(unwrap(raw), &out); err != nil {
		return nil, fmt.Errorf("decode me: %w", err)
	}
	return &out, nil
}

func (a *AuthAPI) ChangePassword(ctx context.Context, req model.ChangePasswordRequest) error {
	_, err := a.c.do(ctx, http.MethodPut, "/api/auth/change-password", req)
	return err
}
