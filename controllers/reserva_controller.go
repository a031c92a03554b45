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

// ReservaServiceAPI defines the interface for reservation operations
type ReservaServiceAPI interface {
	CrearReserva(ctx context.Context, caller policy.Principal, req *services.CrearReservaRequest) (*models.Reserva, *apperrors.Error)
	ObtenerReserva(ctx context.Context, caller policy.Principal, id uint) (*models.Reserva, *apperrors.Error)
	ListarTodas(ctx context.Context, caller policy.Principal) ([]models.Reserva, *apperrors.Error)
	ListarMisReservas(ctx context.Context, caller policy.Principal) ([]models.Reserva, *apperrors.Error)
	CambiarEstado(ctx context.Context, caller policy.Principal, id uint, estado string) *apperrors.Error
	CancelarReserva(ctx context.Context, caller policy.Principal, id uint) *apperrors.Error
	Disponibilidad(ctx context.Context, fecha string) ([]services.DisponibilidadHora, *apperrors.Error)
}

type ReservaController struct {
	service ReservaServiceAPI
}

func NewReservaController(service ReservaServiceAPI) *ReservaController {
	return &ReservaController{service: service}
}

// GetReservas returns every reservation; staff only.
func (ctrl *ReservaController) GetReservas(c *gin.Context) {
	caller, err := middleware.GetPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no autenticado"})
		return
	}

	reservas, serr := ctrl.service.ListarTodas(c.Request.Context(), caller)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusOK, reservas)
}

// GetMisReservas returns the caller's own reservations.
func (ctrl *ReservaController) GetMisReservas(c *gin.Context) {
	caller, err := middleware.GetPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no autenticado"})
		return
	}

	reservas, serr := ctrl.service.ListarMisReservas(c.Request.Context(), caller)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusOK, reservas)
}

func (ctrl *ReservaController) GetReserva(c *gin.Context) {
	caller, err := middleware.GetPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no autenticado"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	reserva, serr := ctrl.service.ObtenerReserva(c.Request.Context(), caller, id)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusOK, reserva)
}

func (ctrl *ReservaController) PostReserva(c *gin.Context) {
	caller, err := middleware.GetPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no autenticado"})
		return
	}

	var req services.CrearReservaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la solicitud inválido", "details": err.Error()})
		return
	}

	reserva, serr := ctrl.service.CrearReserva(c.Request.Context(), caller, &req)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusCreated, reserva)
}

// CambiarEstado accepts the new status as a bare JSON string body.
func (ctrl *ReservaController) CambiarEstado(c *gin.Context) {
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

func (ctrl *ReservaController) CancelarReserva(c *gin.Context) {
	caller, err := middleware.GetPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no autenticado"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if serr := ctrl.service.CancelarReserva(c.Request.Context(), caller, id); serr != nil {
		respondError(c, serr)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetDisponibilidad reports the hourly availability grid for a date.
func (ctrl *ReservaController) GetDisponibilidad(c *gin.Context) {
	fecha := c.Query("fecha")
	if fecha == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "el parámetro fecha es requerido"})
		return
	}

	grid, serr := ctrl.service.Disponibilidad(c.Request.Context(), fecha)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusOK, grid)
}
