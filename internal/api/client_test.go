package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/idilsaglam/lostfound/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	return New(server.URL+"/", opts...)
}

func TestListBareArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/lost-items", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"Wallet","place":"Library","status":"open"}]`))
	})

	items, err := c.LostItems.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.ItemID("1"), items[0].ID)
	assert.Equal(t, "Wallet", items[0].Title)
	assert.Equal(t, model.StatusOpen, items[0].Status)
}

func TestListEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":2,"title":"Keys","place":"Cafe"}],"error":null}`))
	})

	items, err := c.LostItems.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Keys", items[0].Title)
}

func TestListEmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":null}`))
	})

	items, err := c.LostItems.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateSendsTitleAndPlaceOnly(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/lost-items", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		var got map[string]any
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, map[string]any{"title": "Wallet", "place": "Library"}, got)
		w.WriteHeader(http.StatusCreated)
	})

	_, err := c.LostItems.Create(context.Background(), model.CreateLostItemRequest{Title: "Wallet", Place: "Library"})
	require.NoError(t, err)
}

func TestErrorMessageTopLevel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad credentials"}`))
	})

	_, err := c.Auth.Login(context.Background(), model.LoginRequest{Email: "a@b.com", Password: "x"})
	require.Error(t, err)
	msg, ok := ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "bad credentials", msg)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
}

func TestErrorMessageWithStringErrorField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":400,"error":"Bad Request","message":"title is required"}`))
	})

	_, err := c.LostItems.Create(context.Background(), model.CreateLostItemRequest{})
	msg, ok := ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "title is required", msg)
}

func TestErrorMessageEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"data":null,"error":{"code":"EMAIL_ALREADY_EXISTS","message":"email taken"}}`))
	})

	_, err := c.Auth.Signup(context.Background(), model.SignupRequest{Email: "a@b.com", Password: "pw12", Name: "A"})
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "EMAIL_ALREADY_EXISTS", apiErr.Code)
	assert.Equal(t, "email taken", apiErr.Message)
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestErrorWithoutMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	_, err := c.LostItems.List(context.Background())
	require.Error(t, err)
	_, ok := ServerMessage(err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "500")
}

func TestTransportErrorIsWrapped(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.LostItems.List(context.Background())
	require.Error(t, err)
	_, ok := ServerMessage(err)
	assert.False(t, ok)
}

func TestNoRetryOnFailure(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.LostItems.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestLoginExtractsToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{"accessToken":"tok-1","tokenType":"Bearer","expiresIn":86400}}`))
	})

	res, err := c.Auth.Login(context.Background(), model.LoginRequest{Email: "a@b.com", Password: "pw12"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.AccessToken)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, int64(86400), res.ExpiresIn)
}

func TestLoginWithoutToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	res, err := c.Auth.Login(context.Background(), model.LoginRequest{Email: "a@b.com", Password: "pw12"})
	require.NoError(t, err)
	assert.Empty(t, res.AccessToken)
}

func TestBearerTokenAttached(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-9", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":3,"email":"a@b.com","name":"Ann"}}`))
	}, WithToken(func() string { return "tok-9" }))

	p, err := c.Auth.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", p.Email)
	assert.Equal(t, "Ann", p.Name)
}

func TestCheckEmailEscapesQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/check-email", r.URL.Path)
		assert.Equal(t, "a+b@c.com", r.URL.Query().Get("email"))
		_, _ = w.Write([]byte(`{"success":true,"data":{"available":false,"message":"taken"}}`))
	})

	out, err := c.Auth.CheckEmail(context.Background(), "a+b@c.com")
	require.NoError(t, err)
	assert.False(t, out.Available)
	assert.Equal(t, "taken", out.Message)
}

func TestCancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.LostItems.List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUpdateMeAndChangePassword(t *testing.T) {
	var bodies []map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "Bearer jwt", r.Header.Get("Authorization"))
		var b map[string]any
		_ = json.NewDecoder(r.Body).Decode(&b)
		bodies = append(bodies, b)
		switch r.URL.Path {
		case "/api/auth/me":
			_, _ = w.Write([]byte(`{"success":true,"data":{"id":3,"email":"a@b.com","name":"Ann Lee"}}`))
		case "/api/auth/change-password":
			_, _ = w.Write([]byte(`{"success":true,"data":"changed"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, WithToken(func() string { return "jwt" }))

	p, err := c.Auth.UpdateMe(context.Background(), model.UpdateProfileRequest{Name: "Ann Lee"})
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", p.Name)

	err = c.Auth.ChangePassword(context.Background(), model.ChangePasswordRequest{
		CurrentPassword: "old1", NewPassword: "new1", ConfirmPassword: "new1",
	})
	require.NoError(t, err)

	require.Len(t, bodies, 2)
	assert.Equal(t, map[string]any{"name": "Ann Lee"}, bodies[0])
	assert.Equal(t, map[string]any{"currentPassword": "old1", "newPassword": "new1", "confirmPassword": "new1"}, bodies[1])
}
