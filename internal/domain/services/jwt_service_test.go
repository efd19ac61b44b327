package services

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"employee-management-service/internal/domain/models"
	"employee-management-service/pkg/utils"
)

func seedAdmin(t *testing.T, db *gorm.DB, username, email, password string, active bool) *models.Admin {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin := &models.Admin{
		Username: username,
		Email:    email,
		Password: hash,
		IsActive: active,
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return admin
}

func newTestJWTService(t *testing.T, db *gorm.DB) InterfaceJWTService {
	t.Helper()
	cfg := testConfig()
	cfg.AccessTokenTTL = time.Hour
	cfg.RefreshTokenTTL = 24 * time.Hour
	return NewJWTService(cfg, db, NewMemoryTokenStore())
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	seedAdmin(t, db, "admin", "admin@example.com", "secret123", true)
	svc := newTestJWTService(t, db)

	if _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, err := svc.Login("nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: %v", err)
	}

	// both username and email work as identifier
	for _, identifier := range []string{"admin", "admin@example.com"} {
		result, err := svc.Login(identifier, "secret123")
		if err != nil {
			t.Fatalf("login as %q: %v", identifier, err)
		}
		if result.AccessToken == "" || result.RefreshToken == "" {
			t.Fatal("missing tokens in login result")
		}
		if result.AccessToken == result.RefreshToken {
			t.Fatal("access and refresh token are identical")
		}
	}
}

func TestLoginInactiveAdmin(t *testing.T) {
	db := setupTestDB(t)
	seedAdmin(t, db, "admin", "admin@example.com", "secret123", false)
	svc := newTestJWTService(t, db)

	if _, err := svc.Login("admin", "secret123"); !errors.Is(err, ErrAdminInactive) {
		t.Fatalf("inactive admin login: %v", err)
	}
}

func TestValidateAccessToken(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db, "admin", "admin@example.com", "secret123", true)
	svc := newTestJWTService(t, db)

	result, err := svc.Login("admin", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.ValidateAccessToken(result.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Role != "admin" {
		t.Fatalf("claims wrong: %+v", claims)
	}

	// a refresh token is not an access token
	if _, err := svc.ValidateAccessToken(result.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token accepted as access token: %v", err)
	}

	if _, err := svc.ValidateAccessToken("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage token: %v", err)
	}

	// a token signed with a different key is rejected
	otherCfg := testConfig()
	otherCfg.JWTSecretKey = "other-secret"
	otherCfg.AccessTokenTTL = time.Hour
	otherCfg.RefreshTokenTTL = time.Hour
	other := NewJWTService(otherCfg, db, NewMemoryTokenStore())
	forged, err := other.GenerateAccessToken(admin)
	if err != nil {
		t.Fatalf("generate forged token: %v", err)
	}
	if _, err := svc.ValidateAccessToken(forged); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("foreign signature accepted: %v", err)
	}
}

func TestRefresh(t *testing.T) {
	db := setupTestDB(t)
	seedAdmin(t, db, "admin", "admin@example.com", "secret123", true)
	svc := newTestJWTService(t, db)

	result, err := svc.Login("admin", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	accessToken, err := svc.Refresh(result.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := svc.ValidateAccessToken(accessToken); err != nil {
		t.Fatalf("refreshed access token invalid: %v", err)
	}

	// an access token cannot be used to refresh
	if _, err := svc.Refresh(result.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token accepted for refresh: %v", err)
	}

	// a second login replaces the stored refresh token
	second, err := svc.Login("admin", "secret123")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if _, err := svc.Refresh(result.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("superseded refresh token accepted: %v", err)
	}
	if _, err := svc.Refresh(second.RefreshToken); err != nil {
		t.Fatalf("current refresh token rejected: %v", err)
	}
}

func TestLogoutRevokesTokens(t *testing.T) {
	db := setupTestDB(t)
	seedAdmin(t, db, "admin", "admin@example.com", "secret123", true)
	svc := newTestJWTService(t, db)

	result, err := svc.Login("admin", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(result.AccessToken); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.ValidateAccessToken(result.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("revoked access token accepted: %v", err)
	}
	if _, err := svc.Refresh(result.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token survived logout: %v", err)
	}
}
