package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"restaurante-api/models"

	"gorm.io/gorm"
)

// ErrSinCupo is returned when a reservation slot is already at capacity.
var ErrSinCupo = errors.New("sin cupo en el horario solicitado")

// ReservaRepository defines the data access for reservations
type ReservaRepository interface {
	FindAll(ctx context.Context) ([]models.Reserva, error)
	FindByUsuario(ctx context.Context, usuarioID uint) ([]models.Reserva, error)
	FindByID(ctx context.Context, id uint) (*models.Reserva, error)
	// CrearSiHayCupo counts the non-cancelled reservations in the slot and
	// inserts inside one serializable transaction, so two concurrent
	// requests cannot both slip past the capacity check.
	CrearSiHayCupo(ctx context.Context, reserva *models.Reserva, capacidad int) error
	ContarEnSlot(ctx context.Context, fecha, hora string) (int64, error)
	UpdateEstado(ctx context.Context, id uint, estado string) (int64, error)
}

type GormReservaRepository struct {
	db *gorm.DB
}

func NewGormReservaRepository(db *gorm.DB) ReservaRepository {
	return &GormReservaRepository{db: db}
}

func (r *GormReservaRepository) FindAll(ctx context.Context) ([]models.Reserva, error) {
	var reservas []models.Reserva
	err := r.db.WithContext(ctx).
		Preload("Usuario").
		Order("fecha_reserva, hora_reserva").
		Find(&reservas).Error
	return reservas, err
}

func (r *GormReservaRepository) FindByUsuario(ctx context.Context, usuarioID uint) ([]models.Reserva, error) {
	var reservas []models.Reserva
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("fecha_reserva, hora_reserva").
		Find(&reservas).Error
	return reservas, err
}

func (r *GormReservaRepository) FindByID(ctx context.Context, id uint) (*models.Reserva, error) {
	var reserva models.Reserva
	if err := r.db.WithContext(ctx).Preload("Usuario").First(&reserva, id).Error; err != nil {
		return nil, err
	}
	return &reserva, nil
}

func (r *GormReservaRepository) CrearSiHayCupo(ctx context.Context, reserva *models.Reserva, capacidad int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Reserva{}).
			Where("fecha_reserva = ? AND hora_reserva = ? AND estado <> ?",
				reserva.FechaReserva, reserva.HoraReserva, models.ReservaCancelada).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(capacidad) {
			return ErrSinCupo
		}
		return tx.Create(reserva).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

func (r *GormReservaRepository) ContarEnSlot(ctx context.Context, fecha, hora string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reserva{}).
		Where("fecha_reserva = ? AND hora_reserva = ? AND estado <> ?",
			fecha, hora, models.ReservaCancelada).
		Count(&count).Error
	return count, err
}

func (r *GormReservaRepository) UpdateEstado(ctx context.Context, id uint, estado string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Reserva{}).
		Where("reserva_id = ?", id).
		Update("estado", estado)
	return res.RowsAffected, res.Error
}

// EsConflictoSerializacion detects a Postgres serialization failure
// (SQLSTATE 40001); the caller may retry the transaction once.
func EsConflictoSerializacion(err error) bool {
	return err != nil && strings.Contains(err.Error(), "40001")
}
