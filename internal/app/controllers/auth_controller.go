package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"employee-management-service/internal/domain/services"
	"employee-management-service/internal/domain/services/container"
	"employee-management-service/internal/error/code"
	"employee-management-service/internal/error/response"
)

// InterfaceAuthController defines the authentication controller interface
type InterfaceAuthController interface {
	Login()
	Refresh()
	Logout()
	Profile()
}

// AuthController handles authentication requests
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController creates a new authentication controller
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *AuthController) jwtService() services.InterfaceJWTService {
	return c.Container.GetService("jwt").(services.InterfaceJWTService)
}

// LoginRequest is the login request body
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email" binding:"required" example:"admin"`
	Password        string `json:"password" binding:"required" example:"admin123"`
}

// RefreshRequest is the token refresh request body
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// ErrorResponse documents the failure envelope
type ErrorResponse struct {
	Code    int         `json:"code" example:"101001"`
	Message string      `json:"message" example:"Invalid username or password"`
	Data    interface{} `json:"data"`
}

// 1 Login verifies admin credentials and issues a token pair
// @Summary      Administrator login
// @Description  Verifies credentials by username or email and returns access and refresh tokens
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      429  {object}  ErrorResponse
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters", nil)
		return
	}

	result, err := c.jwtService().Login(req.UsernameOrEmail, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminInactive):
			response.Fail(c.Ctx, code.ErrAdminInactive, nil)
		case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrAdminNotFound):
			response.Fail(c.Ctx, code.ErrInvalidCredentials, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "Login failed: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"admin": gin.H{
			"id":       result.Admin.ID,
			"username": result.Admin.Username,
			"email":    result.Admin.Email,
		},
	})
}

// 2 Refresh exchanges a valid refresh token for a new access token
// @Summary      Refresh access token
// @Description  Issues a new access token when the refresh token matches the stored one
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest true "Refresh token"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/refresh [post]
func (c *AuthController) Refresh() {
	var req RefreshRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters", nil)
		return
	}

	accessToken, err := c.jwtService().Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrAdminInactive) {
			response.Fail(c.Ctx, code.ErrAdminInactive, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrRefreshTokenInvalid, nil)
		return
	}

	response.Success(c.Ctx, gin.H{"access_token": accessToken})
}

// 3 Logout revokes the presented access token and the stored refresh token
// @Summary      Administrator logout
// @Description  Revokes the current access token and discards the stored refresh token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (c *AuthController) Logout() {
	authHeader := c.Ctx.GetHeader("Authorization")
	tokenString := extractBearer(authHeader)
	if tokenString == "" {
		response.Unauthorized(c.Ctx)
		return
	}

	if err := c.jwtService().Logout(tokenString); err != nil {
		response.Unauthorized(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{"message": "Logged out"})
}

// 4 Profile returns the authenticated administrator
// @Summary      Current administrator profile
// @Description  Returns the account the presented access token belongs to
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/profile [get]
// @Security     BearerAuth
func (c *AuthController) Profile() {
	adminID, exists := c.Ctx.Get("adminID")
	if !exists {
		response.Unauthorized(c.Ctx)
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.GetAdminByID(adminID.(uint))
	if err != nil {
		response.NotFound(c.Ctx, "Administrator not found")
		return
	}

	response.Success(c.Ctx, gin.H{
		"id":         admin.ID,
		"username":   admin.Username,
		"email":      admin.Email,
		"is_active":  admin.IsActive,
		"created_at": admin.CreatedAt,
	})
}

// extractBearer strips the "Bearer " prefix from an Authorization header
func extractBearer(authHeader string) string {
	const prefix = "Bearer "
	if len(authHeader) > len(prefix) && authHeader[:len(prefix)] == prefix {
		return authHeader[len(prefix):]
	}
	return ""
}

// HandleAuthFunc returns a Gin handler for the named auth method
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "refresh":
			controller.Refresh()
		case "logout":
			controller.Logout()
		case "profile":
			controller.Profile()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "Invalid method",
				"data":    nil,
			})
		}
	}
}
