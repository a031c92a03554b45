package controllers

import (
	"context"
	"net/http"

	"restaurante-api/apperrors"
	"restaurante-api/middleware"
	"restaurante-api/models"
	"restaurante-api/policy"
	"restaurante-api/services"

	"github.com/gin-gonic/gin"
)

// PedidoServiceAPI defines the interface for order operations
type PedidoServiceAPI interface {
	CrearPedido(ctx context.Context, caller policy.Principal, req *services.CrearPedidoRequest) (*services.PedidoCreadoResponse, *apperrors.Error)
	ObtenerPedido(ctx context.Context, caller policy.Principal, id uint) (*models.Pedido, *apperrors.Error)
	ListarTodos(ctx context.Context, caller policy.Principal) ([]models.Pedido, *apperrors.Error)
	ListarMisPedidos(ctx context.Context, caller policy.Principal) ([]models.Pedido, *apperrors.Error)
	CambiarEstado(ctx context.Context, caller policy.Principal, id uint, estado string) *apperrors.Error
	CancelarPedido(ctx context.Context, caller policy.Principal, id uint) *apperrors.Error
}

type PedidoController struct {
	service PedidoServiceAPI
}

func NewPedidoController(service PedidoServiceAPI) *PedidoController {
	return &PedidoController{service: service}
}

// GetPedidos returns every order; staff only.
func (ctrl *PedidoController) GetPedidos(c *gin.Context) {
	caller, err := middleware.GetPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no autenticado"})
		return
	}

	pedidos, serr := ctrl.service.ListarTodos(c.Request.Context(), caller)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusOK, pedidos)
}

// GetMisPedidos returns the caller's own orders.
func (ctrl *PedidoController) GetMisPedidos(c *gin.Context) {
	caller, err := middleware.GetPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no autenticado"})
		return
	}

	pedidos, serr := ctrl.service.ListarMisPedidos(c.Request.Context(), caller)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusOK, pedidos)
}

func (ctrl *PedidoController) GetPedido(c *gin.Context) {
	caller, err := middleware.GetPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no autenticado"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	pedido, serr := ctrl.service.ObtenerPedido(c.Request.Context(), caller, id)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusOK, pedido)
}

func (ctrl *PedidoController) PostPedido(c *gin.Context) {
	caller, err := middleware.GetPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no autenticado"})
		return
	}

	var req services.CrearPedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la solicitud inválido", "details": err.Error()})
		return
	}

	pedido, serr := ctrl.service.CrearPedido(c.Request.Context(), caller, &req)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusCreated, pedido)
}

// CambiarEstado accepts the new status as a bare JSON string body, as the
// original API does.
func (ctrl *PedidoController) CambiarEstado(c *gin.Context) {
	caller, err := middleware.GetPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no autenticado"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var nuevoEstado string
	if err := c.ShouldBindJSON(&nuevoEstado); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la solicitud inválido"})
		return
	}

	if serr := ctrl.service.CambiarEstado(c.Request.Context(), caller, id, nuevoEstado); serr != nil {
		respondError(c, serr)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *PedidoController) CancelarPedido(c *gin.Context) {
	caller, err := middleware.GetPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no autenticado"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if serr := ctrl.service.CancelarPedido(c.Request.Context(), caller, id); serr != nil {
		respondError(c, serr)
		return
	}
	c.Status(http.StatusNoContent)
}
