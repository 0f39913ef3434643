package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/attendly/attendance-backend-go/internal/domain/auth"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	registerResp auth.RegisterResponse
	registerErr  error
	loginResp    auth.TokenResponse
	loginErr     error
}

func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.RegisterResponse{}, err
	}
	return f.registerResp, f.registerErr
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	return auth.AccessTokenResponse{}, auth.ErrInvalidToken
}

func (f *fakeAuthService) Logout(ctx context.Context, req auth.RefreshTokenRequest) error {
	return nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRegisterHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		handler := NewAuthHandler(&fakeAuthService{
			registerResp: auth.RegisterResponse{EmployeeID: "emp-1", Message: "registration successful"},
		})

		rec := postJSON(t, handler.Register, auth.RegisterRequest{
			Username:   "jdoe",
			Password:   "password123",
			Name:       "Jordan Doe",
			Email:      "jdoe@example.com",
			Phone:      "9876543210",
			Department: "engineering",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
	})

	t.Run("validation failure returns 422 with field details", func(t *testing.T) {
		handler := NewAuthHandler(&fakeAuthService{})

		rec := postJSON(t, handler.Register, auth.RegisterRequest{
			Username: "jdoe",
			// everything else missing
		})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
		errDetail := body["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION_ERROR", errDetail["code"])
		details := errDetail["details"].(map[string]interface{})
		assert.Contains(t, details, "password")
		assert.Contains(t, details, "email")
	})

	t.Run("duplicate maps to 409", func(t *testing.T) {
		handler := NewAuthHandler(&fakeAuthService{
			registerErr: employee.ErrUsernameOrEmailExists,
		})

		rec := postJSON(t, handler.Register, auth.RegisterRequest{
			Username:   "jdoe",
			Password:   "password123",
			Name:       "Jordan Doe",
			Email:      "jdoe@example.com",
			Phone:      "9876543210",
			Department: "engineering",
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		handler := NewAuthHandler(&fakeAuthService{})

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("success returns token payload", func(t *testing.T) {
		handler := NewAuthHandler(&fakeAuthService{
			loginResp: auth.TokenResponse{
				AccessToken:  "access",
				RefreshToken: "refresh",
				Employee:     employee.EmployeeResponse{ID: "emp-1", Username: "jdoe"},
			},
		})

		rec := postJSON(t, handler.Login, auth.LoginRequest{Username: "jdoe", Password: "password123"})

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "access", data["access_token"])
	})

	t.Run("bad credentials map to 401", func(t *testing.T) {
		handler := NewAuthHandler(&fakeAuthService{loginErr: auth.ErrInvalidCredentials})

		rec := postJSON(t, handler.Login, auth.LoginRequest{Username: "jdoe", Password: "wrong"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("inactive account maps to 403", func(t *testing.T) {
		handler := NewAuthHandler(&fakeAuthService{loginErr: employee.ErrEmployeeInactive})

		rec := postJSON(t, handler.Login, auth.LoginRequest{Username: "jdoe", Password: "password123"})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("validation errors surface as a field map", func(t *testing.T) {
		handler := NewAuthHandler(&fakeAuthService{loginErr: validator.ValidationErrors{
			{Field: "username", Message: "username is required"},
		}})

		rec := postJSON(t, handler.Login, auth.LoginRequest{})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
