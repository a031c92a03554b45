package controllers

import (
	"context"
	"net/http"

	"restaurante-api/apperrors"
	"restaurante-api/services"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	NombreUsuario string `json:"nombreUsuario" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Rol           string `json:"rol"`
}

// AuthServiceAPI defines the interface for authentication operations
type AuthServiceAPI interface {
	Login(ctx context.Context, email, password string) (*services.LoginResponse, *apperrors.Error)
	Register(ctx context.Context, nombreUsuario, email, password, rol string) (*services.LoginResponse, *apperrors.Error)
}

type AuthController struct {
	service AuthServiceAPI
}

func NewAuthController(service AuthServiceAPI) *AuthController {
	return &AuthController{service: service}
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la solicitud inválido", "details": err.Error()})
		return
	}

	resp, serr := ctrl.service.Login(c.Request.Context(), req.Email, req.Password)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la solicitud inválido", "details": err.Error()})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validación fallida", "details": err.Error()})
		return
	}

	resp, serr := ctrl.service.Register(c.Request.Context(), req.NombreUsuario, req.Email, req.Password, req.Rol)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusOK, resp)
}
