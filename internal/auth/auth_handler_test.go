package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-leavedesk/internal/auth"
	autherrors "go-leavedesk/internal/auth/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeAuthService struct {
	registerFn func(ctx context.Context, req auth.RegisterRequest) (auth.TokenPairResponse, error)
	loginFn    func(ctx context.Context, email, password string) (auth.TokenPairResponse, error)
	getMeFn    func(ctx context.Context, userID string) (*auth.AuthResponse, error)
}

func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenPairResponse, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (auth.TokenPairResponse, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthService) GetMe(ctx context.Context, userID string) (*auth.AuthResponse, error) {
	return f.getMeFn(ctx, userID)
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{
			registerFn: func(ctx context.Context, req auth.RegisterRequest) (auth.TokenPairResponse, error) {
				assert.Equal(t, "dina@example.com", req.Email)
				return auth.TokenPairResponse{
					AccessToken:  "access",
					RefreshToken: "refresh",
					User: auth.AuthResponse{
						ID:    uuid.New().String(),
						Name:  req.Name,
						Email: req.Email,
						Role:  "employee",
					},
				}, nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"name":"Dina","email":"dina@example.com","password":"secret123"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Register(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got auth.TokenPairResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Equal(t, "access", got.AccessToken)
		assert.Equal(t, "dina@example.com", got.User.Email)
	})

	t.Run("negative validation error", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"not-an-email"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		svc := &fakeAuthService{
			registerFn: func(ctx context.Context, req auth.RegisterRequest) (auth.TokenPairResponse, error) {
				return auth.TokenPairResponse{}, autherrors.ErrEmailAlreadyRegistered
			},
		}
		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"name":"Dina","email":"dina@example.com","password":"secret123"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Register(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "CONFLICT", env.Error.Code)
		assert.Equal(t, "email already registered", env.Error.Message)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password string) (auth.TokenPairResponse, error) {
				assert.Equal(t, "dina@example.com", email)
				assert.Equal(t, "secret123", password)
				return auth.TokenPairResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"email":"dina@example.com","password":"secret123"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative bad credentials", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password string) (auth.TokenPairResponse, error) {
				return auth.TokenPairResponse{}, autherrors.ErrInvalidCredentials
			},
		}
		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"email":"dina@example.com","password":"wrong"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	})

	t.Run("negative service error", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password string) (auth.TokenPairResponse, error) {
				return auth.TokenPairResponse{}, errors.New("db down")
			},
		}
		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"email":"dina@example.com","password":"secret123"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Login(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
		assert.Equal(t, "An unexpected error occurred", env.Error.Message)
	})
}

func TestAuthHandler_GetMe(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		userID := uuid.New().String()
		svc := &fakeAuthService{
			getMeFn: func(ctx context.Context, id string) (*auth.AuthResponse, error) {
				assert.Equal(t, userID, id)
				return &auth.AuthResponse{ID: id, Name: "Dina", Email: "dina@example.com", Role: "employee"}, nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		c.Set("user_id", userID)

		h.GetMe(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got auth.AuthResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Equal(t, userID, got.ID)
	})

	t.Run("negative not found", func(t *testing.T) {
		svc := &fakeAuthService{
			getMeFn: func(ctx context.Context, id string) (*auth.AuthResponse, error) {
				return nil, autherrors.ErrUserNotFound
			},
		}
		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		c.Set("user_id", uuid.New().String())

		h.GetMe(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}
