package controller

import (
	"errors"
	"net/http"

	"github.com/casaviva/hogar-backend/internal/app/service"
	apperrors "github.com/casaviva/hogar-backend/internal/errors"
	"github.com/casaviva/hogar-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Login issues an admin token pair
// POST /api/v1/admin/login
func (ctrl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "El email o la contraseña no son correctos")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Admin login failed", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// Refresh exchanges a refresh token for a new pair
// POST /api/v1/admin/refresh
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tokens, err := ctrl.authService.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "La sesión no es válida. Vuelve a iniciar sesión")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Token refresh failed", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// Logout revokes the current access token
// POST /api/v1/admin/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	token, ok := middleware.GetAccessToken(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil {
		middleware.GetLoggerFromContext(c).Error("Logout failed", err)
		apperrors.InternalError(c, "No se pudo cerrar la sesión")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada"})
}

// Me returns the authenticated admin
// GET /api/v1/admin/me
func (ctrl *AuthController) Me(c *gin.Context) {
	email, _ := middleware.GetUserEmail(c)
	role, _ := middleware.GetUserRole(c)
	c.JSON(http.StatusOK, gin.H{
		"email": email,
		"role":  role,
	})
}
