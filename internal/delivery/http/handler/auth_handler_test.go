package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-backend/config"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/delivery/http/middleware"
	"clinic-backend/pkg/jwt"
	"clinic-backend/pkg/validator"

	"github.com/google/uuid"
)

type mockAuthUsecase struct {
	logoutFn func(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error
}

func (m *mockAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	return &dto.TokenResponse{}, nil
}

func (m *mockAuthUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error {
	return m.logoutFn(ctx, userID, accessTokenID, refreshTokenID)
}

func (m *mockAuthUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return &dto.TokenResponse{}, nil
}

func (m *mockAuthUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	return &dto.UserResponse{}, nil
}

func newTestAuthHandler(mock *mockAuthUsecase) *AuthHandler {
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
	return NewAuthHandler(mock, validator.NewValidator(), jwtService)
}

func TestLogoutForwardsSession(t *testing.T) {
	userID := uuid.New()
	var gotUserID uuid.UUID
	var gotTokenID string

	mock := &mockAuthUsecase{
		logoutFn: func(ctx context.Context, uid uuid.UUID, accessTokenID, refreshTokenID string) error {
			gotUserID = uid
			gotTokenID = accessTokenID
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.TokenIDKey, "token-abc")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	newTestAuthHandler(mock).Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if gotUserID != userID {
		t.Errorf("userID = %v, want %v", gotUserID, userID)
	}
	if gotTokenID != "token-abc" {
		t.Errorf("accessTokenID = %q, want token-abc", gotTokenID)
	}
}

func TestLogoutMissingSession(t *testing.T) {
	mock := &mockAuthUsecase{
		logoutFn: func(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error {
			t.Fatal("usecase must not be called without a session")
			return nil
		},
	}

	rec := httptest.NewRecorder()
	newTestAuthHandler(mock).Logout(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
