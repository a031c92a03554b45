package controllers

import (
	"context"
	"net/http"

	"restaurante-api/apperrors"
	"restaurante-api/models"
	"restaurante-api/services"

	"github.com/gin-gonic/gin"
)

// UsuarioServiceAPI defines the interface for user management operations
type UsuarioServiceAPI interface {
	ListarUsuarios(ctx context.Context) ([]models.Usuario, *apperrors.Error)
	ObtenerUsuario(ctx context.Context, id uint) (*models.Usuario, *apperrors.Error)
	CrearUsuario(ctx context.Context, req *services.CrearUsuarioRequest) (*models.Usuario, *apperrors.Error)
	ActualizarUsuario(ctx context.Context, id uint, req *services.ActualizarUsuarioRequest) *apperrors.Error
	EliminarUsuario(ctx context.Context, id uint) *apperrors.Error
}

type UsuarioController struct {
	service UsuarioServiceAPI
}

func NewUsuarioController(service UsuarioServiceAPI) *UsuarioController {
	return &UsuarioController{service: service}
}

func (ctrl *UsuarioController) GetUsuarios(c *gin.Context) {
	usuarios, serr := ctrl.service.ListarUsuarios(c.Request.Context())
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusOK, usuarios)
}

func (ctrl *UsuarioController) GetUsuario(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	usuario, serr := ctrl.service.ObtenerUsuario(c.Request.Context(), id)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusOK, usuario)
}

func (ctrl *UsuarioController) PostUsuario(c *gin.Context) {
	var req services.CrearUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la solicitud inválido", "details": err.Error()})
		return
	}

	usuario, serr := ctrl.service.CrearUsuario(c.Request.Context(), &req)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusCreated, usuario)
}

func (ctrl *UsuarioController) PutUsuario(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.ActualizarUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la solicitud inválido", "details": err.Error()})
		return
	}

	if serr := ctrl.service.ActualizarUsuario(c.Request.Context(), id, &req); serr != nil {
		respondError(c, serr)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteUsuario removes the row for real; users carry no soft-delete flag.
func (ctrl *UsuarioController) DeleteUsuario(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if serr := ctrl.service.EliminarUsuario(c.Request.Context(), id); serr != nil {
		respondError(c, serr)
		return
	}
	c.Status(http.StatusNoContent)
}
