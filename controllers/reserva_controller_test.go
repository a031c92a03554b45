package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurante-api/apperrors"
	"restaurante-api/controllers"
	"restaurante-api/models"
	"restaurante-api/policy"
	"restaurante-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// --- fake reservation service ---

type fakeReservaService struct {
	crearFn          func(ctx context.Context, caller policy.Principal, req *services.CrearReservaRequest) (*models.Reserva, *apperrors.Error)
	obtenerFn        func(ctx context.Context, caller policy.Principal, id uint) (*models.Reserva, *apperrors.Error)
	listarFn         func(ctx context.Context, caller policy.Principal) ([]models.Reserva, *apperrors.Error)
	listarMisFn      func(ctx context.Context, caller policy.Principal) ([]models.Reserva, *apperrors.Error)
	cambiarEstadoFn  func(ctx context.Context, caller policy.Principal, id uint, estado string) *apperrors.Error
	cancelarFn       func(ctx context.Context, caller policy.Principal, id uint) *apperrors.Error
	disponibilidadFn func(ctx context.Context, fecha string) ([]services.DisponibilidadHora, *apperrors.Error)
}

func (f *fakeReservaService) CrearReserva(ctx context.Context, caller policy.Principal, req *services.CrearReservaRequest) (*models.Reserva, *apperrors.Error) {
	return f.crearFn(ctx, caller, req)
}
func (f *fakeReservaService) ObtenerReserva(ctx context.Context, caller policy.Principal, id uint) (*models.Reserva, *apperrors.Error) {
	return f.obtenerFn(ctx, caller, id)
}
func (f *fakeReservaService) ListarTodas(ctx context.Context, caller policy.Principal) ([]models.Reserva, *apperrors.Error) {
	return f.listarFn(ctx, caller)
}
func (f *fakeReservaService) ListarMisReservas(ctx context.Context, caller policy.Principal) ([]models.Reserva, *apperrors.Error) {
	return f.listarMisFn(ctx, caller)
}
func (f *fakeReservaService) CambiarEstado(ctx context.Context, caller policy.Principal, id uint, estado string) *apperrors.Error {
	return f.cambiarEstadoFn(ctx, caller, id, estado)
}
func (f *fakeReservaService) CancelarReserva(ctx context.Context, caller policy.Principal, id uint) *apperrors.Error {
	return f.cancelarFn(ctx, caller, id)
}
func (f *fakeReservaService) Disponibilidad(ctx context.Context, fecha string) ([]services.DisponibilidadHora, *apperrors.Error) {
	return f.disponibilidadFn(ctx, fecha)
}

func routerReservas(svc controllers.ReservaServiceAPI, p policy.Principal) *gin.Engine {
	r := gin.New()
	r.Use(conPrincipal(p))
	ctrl := controllers.NewReservaController(svc)
	r.GET("/reservas/disponibilidad", ctrl.GetDisponibilidad)
	r.GET("/reservas/:id", ctrl.GetReserva)
	r.DELETE("/reservas/:id", ctrl.CancelarReserva)
	return r
}

// --- tests ---

func TestGetDisponibilidad_FechaRequerida(t *testing.T) {
	r := routerReservas(&fakeReservaService{}, clienteDePrueba)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reservas/disponibilidad", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "fecha")
}

func TestGetDisponibilidad_OK(t *testing.T) {
	svc := &fakeReservaService{
		disponibilidadFn: func(_ context.Context, fecha string) ([]services.DisponibilidadHora, *apperrors.Error) {
			assert.Equal(t, "2026-09-15", fecha)
			return []services.DisponibilidadHora{
				{Hora: "12:00", Disponible: true, ReservasActuales: 3},
			}, nil
		},
	}
	r := routerReservas(svc, clienteDePrueba)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reservas/disponibilidad?fecha=2026-09-15", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hora":"12:00"`)
}

func TestGetReserva_NotFound(t *testing.T) {
	svc := &fakeReservaService{
		obtenerFn: func(_ context.Context, _ policy.Principal, _ uint) (*models.Reserva, *apperrors.Error) {
			return nil, apperrors.NotFound("reserva no encontrada")
		},
	}
	r := routerReservas(svc, clienteDePrueba)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reservas/3", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelarReserva_NoContent(t *testing.T) {
	svc := &fakeReservaService{
		cancelarFn: func(_ context.Context, _ policy.Principal, id uint) *apperrors.Error {
			assert.Equal(t, uint(3), id)
			return nil
		},
	}
	r := routerReservas(svc, clienteDePrueba)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/reservas/3", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}
