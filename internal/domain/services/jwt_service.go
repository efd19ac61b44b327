package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"employee-management-service/internal/domain/models"
	"employee-management-service/internal/infrastructure/config"
	"employee-management-service/pkg/utils"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// LoginResult is returned on a successful login.
type LoginResult struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	Admin        *models.Admin `json:"admin"`
}

// JWTClaims is the claim set carried by both token kinds.
type JWTClaims struct {
	AdminID   uint   `json:"admin_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// InterfaceJWTService defines the authentication service interface
type InterfaceJWTService interface {
	Login(identifier, password string) (*LoginResult, error)
	Refresh(refreshToken string) (string, error)
	Logout(accessToken string) error
	ValidateAccessToken(tokenString string) (*JWTClaims, error)
	GenerateAccessToken(admin *models.Admin) (string, error)
	GenerateRefreshToken(admin *models.Admin) (string, error)
}

// JWTService issues and verifies access/refresh tokens.
type JWTService struct {
	secretKey  string
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	DB         *gorm.DB
	Tokens     InterfaceTokenStore
}

// NewJWTService creates a new JWT service.
func NewJWTService(cfg *config.Config, db *gorm.DB, tokens InterfaceTokenStore) InterfaceJWTService {
	return &JWTService{
		secretKey:  cfg.JWTSecretKey,
		issuer:     "employee-management-service",
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		DB:         db,
		Tokens:     tokens,
	}
}

// GenerateAccessToken signs a short-lived access token.
func (s *JWTService) GenerateAccessToken(admin *models.Admin) (string, error) {
	return s.generate(admin, tokenTypeAccess, s.accessTTL)
}

// GenerateRefreshToken signs a long-lived refresh token.
func (s *JWTService) GenerateRefreshToken(admin *models.Admin) (string, error) {
	return s.generate(admin, tokenTypeRefresh, s.refreshTTL)
}

func (s *JWTService) generate(admin *models.Admin, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		AdminID:   admin.ID,
		Role:      "admin",
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   fmt.Sprintf("%d", admin.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// parse verifies signature and expiry and rejects unexpected algorithms.
func (s *JWTService) parse(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateAccessToken verifies an access token and its revocation state.
func (s *JWTService) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, ErrInvalidToken
	}

	revoked, err := s.Tokens.IsAccessTokenRevoked(claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Login verifies credentials against active administrators by username or
// email and issues a token pair. The refresh token is retained server-side
// so it can be matched on refresh.
func (s *JWTService) Login(identifier, password string) (*LoginResult, error) {
	var admin models.Admin
	err := s.DB.Where("username = ? OR email = ?", identifier, identifier).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !admin.IsActive {
		return nil, ErrAdminInactive
	}

	if !utils.CheckPasswordHash(password, admin.Password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.GenerateAccessToken(&admin)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.GenerateRefreshToken(&admin)
	if err != nil {
		return nil, err
	}

	if err := s.Tokens.StoreRefreshToken(admin.ID, refreshToken, s.refreshTTL); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Admin:        &admin,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// token must match the stored one and the administrator must still be
// active.
func (s *JWTService) Refresh(refreshToken string) (string, error) {
	claims, err := s.parse(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.TokenType != tokenTypeRefresh {
		return "", ErrInvalidToken
	}

	stored, err := s.Tokens.GetRefreshToken(claims.AdminID)
	if err != nil {
		return "", err
	}
	if stored == "" || stored != refreshToken {
		return "", ErrInvalidToken
	}

	var admin models.Admin
	if err := s.DB.First(&admin, claims.AdminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	if !admin.IsActive {
		return "", ErrAdminInactive
	}

	return s.GenerateAccessToken(&admin)
}

// Logout revokes the access token until its natural expiry and drops the
// stored refresh token.
func (s *JWTService) Logout(accessToken string) error {
	claims, err := s.ValidateAccessToken(accessToken)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.Tokens.RevokeAccessToken(claims.ID, ttl); err != nil {
		return err
	}
	return s.Tokens.DeleteRefreshToken(claims.AdminID)
}
