package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurante-api/apperrors"
	"restaurante-api/events"
	"restaurante-api/models"
	"restaurante-api/policy"
	"restaurante-api/repository"

	"gorm.io/gorm"
)

// CapacidadPorSlot is the fixed number of reservations a slot can hold.
const CapacidadPorSlot = 10

// Availability grid bounds, inclusive.
const (
	horaApertura = 12
	horaCierre   = 22
)

type CrearReservaRequest struct {
	FechaReserva            string `json:"fechaReserva" binding:"required"`
	HoraReserva             string `json:"horaReserva" binding:"required"`
	NumeroPersonas          int    `json:"numeroPersonas" binding:"required,min=1"`
	ObservacionesEspeciales string `json:"observacionesEspeciales"`
}

// DisponibilidadHora is one row of the availability grid.
type DisponibilidadHora struct {
	Hora             string `json:"hora"`
	Disponible       bool   `json:"disponible"`
	ReservasActuales int64  `json:"reservasActuales"`
}

type ReservaService struct {
	reservaRepo repository.ReservaRepository
	publisher   events.Publisher
}

func NewReservaService(reservaRepo repository.ReservaRepository, publisher events.Publisher) *ReservaService {
	return &ReservaService{reservaRepo: reservaRepo, publisher: publisher}
}

// CrearReserva creates a reservation for the caller. The slot must be in
// the future and below capacity; the capacity check and the insert run in
// one serializable transaction, retried once on a serialization conflict.
func (s *ReservaService) CrearReserva(ctx context.Context, caller policy.Principal, req *CrearReservaRequest) (*models.Reserva, *apperrors.Error) {
	fecha, hora, aerr := normalizarFechaHora(req.FechaReserva, req.HoraReserva)
	if aerr != nil {
		return nil, aerr
	}

	fechaHora, err := time.ParseInLocation("2006-01-02 15:04", fecha+" "+hora, time.Local)
	if err != nil {
		return nil, apperrors.InvalidInput("fecha u hora de reserva inválida")
	}
	if !fechaHora.After(time.Now()) {
		return nil, apperrors.InvalidInput("la fecha y hora de reserva debe ser futura")
	}

	reserva := &models.Reserva{
		FechaReserva:            fecha,
		HoraReserva:             hora,
		NumeroPersonas:          req.NumeroPersonas,
		Estado:                  models.ReservaPendiente,
		ObservacionesEspeciales: req.ObservacionesEspeciales,
		FechaCreacion:           time.Now().UTC(),
		UsuarioID:               caller.UsuarioID,
	}

	err = s.reservaRepo.CrearSiHayCupo(ctx, reserva, CapacidadPorSlot)
	if repository.EsConflictoSerializacion(err) {
		err = s.reservaRepo.CrearSiHayCupo(ctx, reserva, CapacidadPorSlot)
	}
	if err != nil {
		if errors.Is(err, repository.ErrSinCupo) {
			return nil, apperrors.InvalidInput("no hay disponibilidad para esa fecha y hora")
		}
		return nil, apperrors.Internal("error al crear la reserva", err)
	}

	s.publicar(ctx, events.ReservaCreada, reserva.ReservaID, reserva.Estado, caller.UsuarioID)
	return reserva, nil
}

// ObtenerReserva returns one reservation; readable by its owner or staff.
func (s *ReservaService) ObtenerReserva(ctx context.Context, caller policy.Principal, id uint) (*models.Reserva, *apperrors.Error) {
	reserva, err := s.reservaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("reserva no encontrada")
		}
		return nil, apperrors.Internal("error al consultar la reserva", err)
	}
	if !policy.PuedeVerReserva(caller, reserva.UsuarioID) {
		return nil, apperrors.Forbidden("no tiene permiso para ver esta reserva")
	}
	return reserva, nil
}

// ListarTodas returns every reservation ordered by (fecha, hora). Staff only.
func (s *ReservaService) ListarTodas(ctx context.Context, caller policy.Principal) ([]models.Reserva, *apperrors.Error) {
	if !caller.EsPersonal() {
		return nil, apperrors.Forbidden("acceso restringido al personal")
	}
	reservas, err := s.reservaRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("error al listar las reservas", err)
	}
	return reservas, nil
}

// ListarMisReservas returns the caller's reservations ordered by (fecha, hora).
func (s *ReservaService) ListarMisReservas(ctx context.Context, caller policy.Principal) ([]models.Reserva, *apperrors.Error) {
	reservas, err := s.reservaRepo.FindByUsuario(ctx, caller.UsuarioID)
	if err != nil {
		return nil, apperrors.Internal("error al listar las reservas", err)
	}
	return reservas, nil
}

// CambiarEstado moves a reservation to any state of the closed set. As with
// orders, no transition table is enforced.
func (s *ReservaService) CambiarEstado(ctx context.Context, caller policy.Principal, id uint, estado string) *apperrors.Error {
	if !policy.PuedeCambiarEstados(caller) {
		return apperrors.Forbidden("acceso restringido al personal")
	}
	if !models.EsEstadoReservaValido(estado) {
		return apperrors.InvalidInput("estado inválido")
	}

	rows, err := s.reservaRepo.UpdateEstado(ctx, id, estado)
	if err != nil {
		return apperrors.Internal("error al actualizar el estado", err)
	}
	if rows == 0 {
		return apperrors.NotFound("reserva no encontrada")
	}

	s.publicar(ctx, events.ReservaEstadoCambiada, id, estado, caller.UsuarioID)
	return nil
}

// CancelarReserva is the self-service cancellation: owner or admin. Unlike
// orders, any reservation may be cancelled regardless of its state.
func (s *ReservaService) CancelarReserva(ctx context.Context, caller policy.Principal, id uint) *apperrors.Error {
	reserva, err := s.reservaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("reserva no encontrada")
		}
		return apperrors.Internal("error al consultar la reserva", err)
	}

	if !policy.PuedeCancelarReserva(caller, reserva.UsuarioID) {
		return apperrors.Forbidden("no tiene permiso para cancelar esta reserva")
	}

	rows, uerr := s.reservaRepo.UpdateEstado(ctx, id, models.ReservaCancelada)
	if uerr != nil {
		return apperrors.Internal("error al cancelar la reserva", uerr)
	}
	if rows == 0 {
		return apperrors.NotFound("reserva no encontrada")
	}

	s.publicar(ctx, events.ReservaEstadoCambiada, id, models.ReservaCancelada, caller.UsuarioID)
	return nil
}

// Disponibilidad reports, for each whole hour between 12:00 and 22:00, the
// non-cancelled reservation count for that exact time. Reservations off the
// hourly grid do not count against any slot.
func (s *ReservaService) Disponibilidad(ctx context.Context, fecha string) ([]DisponibilidadHora, *apperrors.Error) {
	fechaNorm, err := normalizarFecha(fecha)
	if err != nil {
		return nil, apperrors.InvalidInput("fecha inválida")
	}

	grid := make([]DisponibilidadHora, 0, horaCierre-horaApertura+1)
	for h := horaApertura; h <= horaCierre; h++ {
		hora := fmt.Sprintf("%02d:00", h)
		count, cerr := s.reservaRepo.ContarEnSlot(ctx, fechaNorm, hora)
		if cerr != nil {
			return nil, apperrors.Internal("error al consultar la disponibilidad", cerr)
		}
		grid = append(grid, DisponibilidadHora{
			Hora:             hora,
			Disponible:       count < CapacidadPorSlot,
			ReservasActuales: count,
		})
	}
	return grid, nil
}

func (s *ReservaService) publicar(ctx context.Context, tipo string, id uint, estado string, usuarioID uint) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, events.LifecycleEvent{
		Tipo:      tipo,
		EntidadID: id,
		Estado:    estado,
		UsuarioID: usuarioID,
		Timestamp: time.Now().UTC(),
	})
}

// normalizarFecha accepts "2006-01-02" or a full ISO timestamp and returns
// the date part.
func normalizarFecha(fecha string) (string, error) {
	if len(fecha) > 10 {
		fecha = fecha[:10]
	}
	t, err := time.Parse("2006-01-02", fecha)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}

// normalizarFechaHora validates and canonicalizes the slot key: date as
// "2006-01-02", time as "HH:MM". The exact-match availability comparison
// depends on this canonical form.
func normalizarFechaHora(fecha, hora string) (string, string, *apperrors.Error) {
	fechaNorm, err := normalizarFecha(fecha)
	if err != nil {
		return "", "", apperrors.InvalidInput("fecha de reserva inválida")
	}

	t, err := time.Parse("15:04:05", hora)
	if err != nil {
		t, err = time.Parse("15:04", hora)
	}
	if err != nil {
		return "", "", apperrors.InvalidInput("hora de reserva inválida")
	}
	return fechaNorm, t.Format("15:04"), nil
}
