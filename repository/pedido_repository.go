package repository

import (
	"context"

	"restaurante-api/models"

	"gorm.io/gorm"
)

// PedidoRepository defines the data access for orders
type PedidoRepository interface {
	FindAll(ctx context.Context) ([]models.Pedido, error)
	FindByUsuario(ctx context.Context, usuarioID uint) ([]models.Pedido, error)
	FindByID(ctx context.Context, id uint) (*models.Pedido, error)
	Create(ctx context.Context, pedido *models.Pedido) error
	UpdateEstado(ctx context.Context, id uint, estado string) (int64, error)
}

type GormPedidoRepository struct {
	db *gorm.DB
}

func NewGormPedidoRepository(db *gorm.DB) PedidoRepository {
	return &GormPedidoRepository{db: db}
}

func (r *GormPedidoRepository) FindAll(ctx context.Context) ([]models.Pedido, error) {
	var pedidos []models.Pedido
	err := r.db.WithContext(ctx).
		Preload("Usuario").
		Preload("DetallesPedido").
		Preload("DetallesPedido.Producto").
		Order("fecha_pedido DESC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *GormPedidoRepository) FindByUsuario(ctx context.Context, usuarioID uint) ([]models.Pedido, error) {
	var pedidos []models.Pedido
	err := r.db.WithContext(ctx).
		Preload("DetallesPedido").
		Preload("DetallesPedido.Producto").
		Where("usuario_id = ?", usuarioID).
		Order("fecha_pedido DESC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *GormPedidoRepository) FindByID(ctx context.Context, id uint) (*models.Pedido, error) {
	var pedido models.Pedido
	if err := r.db.WithContext(ctx).
		Preload("Usuario").
		Preload("DetallesPedido").
		Preload("DetallesPedido.Producto").
		First(&pedido, id).Error; err != nil {
		return nil, err
	}
	return &pedido, nil
}

// Create persists the order together with its lines in one transaction.
func (r *GormPedidoRepository) Create(ctx context.Context, pedido *models.Pedido) error {
	return r.db.WithContext(ctx).Create(pedido).Error
}

func (r *GormPedidoRepository) UpdateEstado(ctx context.Context, id uint, estado string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Pedido{}).
		Where("pedido_id = ?", id).
		Update("estado", estado)
	return res.RowsAffected, res.Error
}
