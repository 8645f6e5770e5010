package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/orderhub/backend/internal/domain"
	"github.com/orderhub/backend/internal/dto"
	"github.com/orderhub/backend/pkg/response"
)

func setupUserRouter(svc *MockUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewUserHandler(svc)

	users := router.Group("/api/user")
	{
		users.POST("", h.Register)
		users.POST("/login", h.Login)
		users.GET("/all", h.GetAll)
		users.GET("/allCustomers", h.GetCustomers)
		users.GET("/:email", h.GetByEmail)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
	}

	return router
}

func TestUserHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockFunc       func(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error)
		expectedStatus int
		wantDetails    bool
	}{
		{
			name: "successful registration",
			body: `{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "password": "engine123"}`,
			mockFunc: func(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error) {
				return &domain.User{ID: 1, FirstName: req.FirstName, Email: req.Email}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing fields collected into details",
			body:           `{"email": "not-an-email"}`,
			expectedStatus: http.StatusBadRequest,
			wantDetails:    true,
		},
		{
			name: "duplicate email",
			body: `{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "password": "engine123"}`,
			mockFunc: func(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error) {
				return nil, domain.ErrUserAlreadyExists
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupUserRouter(&MockUserService{RegisterFunc: tt.mockFunc})

			req := httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.wantDetails {
				var body response.ErrorBody
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("unmarshal error body: %v", err)
				}
				if len(body.Details) == 0 {
					t.Error("expected field-level details in validation response")
				}
			}
		})
	}
}

func TestUserHandler_RegisterOmitsCredential(t *testing.T) {
	router := setupUserRouter(&MockUserService{
		RegisterFunc: func(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error) {
			return &domain.User{ID: 1, Email: req.Email, Credential: "bcrypt-hash"}, nil
		},
	})

	body := `{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "password": "engine123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	for _, key := range []string{"credential", "password"} {
		if _, ok := payload[key]; ok {
			t.Errorf("response leaked %q field", key)
		}
	}
}

func TestUserHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockFunc       func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
		expectedStatus int
	}{
		{
			name: "successful login returns token",
			body: `{"email": "ada@example.com", "password": "engine123"}`,
			mockFunc: func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
				return &dto.LoginResponse{
					User:  &domain.User{ID: 1, Email: req.Email},
					Token: "signed-token",
				}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			body:           `{"email": "ada@example.com", "password": "nope12"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing password",
			body:           `{"email": "ada@example.com"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupUserRouter(&MockUserService{LoginFunc: tt.mockFunc})

			req := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestUserHandler_GetByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router := setupUserRouter(&MockUserService{
			GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return &domain.User{ID: 7, Email: email}, nil
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/api/user/ada@example.com", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		router := setupUserRouter(&MockUserService{})

		req := httptest.NewRequest(http.MethodGet, "/api/user/nobody@example.com", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", w.Code)
		}
	})
}

func TestUserHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockFunc       func(ctx context.Context, id int64) error
		expectedStatus int
	}{
		{
			name:           "deleted",
			path:           "/api/user/7",
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "unknown user",
			path: "/api/user/404",
			mockFunc: func(ctx context.Context, id int64) error {
				return domain.ErrUserNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non-numeric id",
			path:           "/api/user/abc",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupUserRouter(&MockUserService{DeleteFunc: tt.mockFunc})

			req := httptest.NewRequest(http.MethodDelete, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}
