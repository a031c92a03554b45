package repository

import (
	"context"

	"restaurante-api/models"

	"gorm.io/gorm"
)

// CategoriaRepository defines the data access for categories
type CategoriaRepository interface {
	FindActivas(ctx context.Context) ([]models.Categoria, error)
	FindByID(ctx context.Context, id uint) (*models.Categoria, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, categoria *models.Categoria) error
	Update(ctx context.Context, categoria *models.Categoria) (int64, error)
	Desactivar(ctx context.Context, id uint) (int64, error)
}

// ProductoRepository defines the data access for products
type ProductoRepository interface {
	FindDisponibles(ctx context.Context) ([]models.Producto, error)
	FindDisponiblesPorCategoria(ctx context.Context, categoriaID uint) ([]models.Producto, error)
	FindByID(ctx context.Context, id uint) (*models.Producto, error)
	Create(ctx context.Context, producto *models.Producto) error
	Update(ctx context.Context, producto *models.Producto) (int64, error)
	Desactivar(ctx context.Context, id uint) (int64, error)
}

type GormCategoriaRepository struct {
	db *gorm.DB
}

func NewGormCategoriaRepository(db *gorm.DB) CategoriaRepository {
	return &GormCategoriaRepository{db: db}
}

func (r *GormCategoriaRepository) FindActivas(ctx context.Context) ([]models.Categoria, error) {
	var categorias []models.Categoria
	err := r.db.WithContext(ctx).
		Where("activa = ?", true).
		Preload("Productos").
		Order("categoria_id").
		Find(&categorias).Error
	return categorias, err
}

// FindByID returns the category regardless of its active flag; soft-deleted
// categories stay retrievable by id.
func (r *GormCategoriaRepository) FindByID(ctx context.Context, id uint) (*models.Categoria, error) {
	var categoria models.Categoria
	if err := r.db.WithContext(ctx).Preload("Productos").First(&categoria, id).Error; err != nil {
		return nil, err
	}
	return &categoria, nil
}

func (r *GormCategoriaRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Categoria{}).Where("categoria_id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *GormCategoriaRepository) Create(ctx context.Context, categoria *models.Categoria) error {
	return r.db.WithContext(ctx).Create(categoria).Error
}

func (r *GormCategoriaRepository) Update(ctx context.Context, categoria *models.Categoria) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Categoria{}).
		Where("categoria_id = ?", categoria.CategoriaID).
		Updates(map[string]interface{}{
			"nombre":      categoria.Nombre,
			"descripcion": categoria.Descripcion,
			"activa":      categoria.Activa,
			"imagen_url":  categoria.ImagenURL,
		})
	return res.RowsAffected, res.Error
}

func (r *GormCategoriaRepository) Desactivar(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Categoria{}).
		Where("categoria_id = ?", id).
		Update("activa", false)
	return res.RowsAffected, res.Error
}

type GormProductoRepository struct {
	db *gorm.DB
}

func NewGormProductoRepository(db *gorm.DB) ProductoRepository {
	return &GormProductoRepository{db: db}
}

func (r *GormProductoRepository) FindDisponibles(ctx context.Context) ([]models.Producto, error) {
	var productos []models.Producto
	err := r.db.WithContext(ctx).
		Where("disponible = ?", true).
		Preload("Categoria").
		Order("producto_id").
		Find(&productos).Error
	return productos, err
}

func (r *GormProductoRepository) FindDisponiblesPorCategoria(ctx context.Context, categoriaID uint) ([]models.Producto, error) {
	var productos []models.Producto
	err := r.db.WithContext(ctx).
		Where("categoria_id = ? AND disponible = ?", categoriaID, true).
		Preload("Categoria").
		Order("producto_id").
		Find(&productos).Error
	return productos, err
}

// FindByID returns the product regardless of availability; historical order
// lines keep referencing soft-deleted products.
func (r *GormProductoRepository) FindByID(ctx context.Context, id uint) (*models.Producto, error) {
	var producto models.Producto
	if err := r.db.WithContext(ctx).Preload("Categoria").First(&producto, id).Error; err != nil {
		return nil, err
	}
	return &producto, nil
}

func (r *GormProductoRepository) Create(ctx context.Context, producto *models.Producto) error {
	return r.db.WithContext(ctx).Create(producto).Error
}

func (r *GormProductoRepository) Update(ctx context.Context, producto *models.Producto) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Producto{}).
		Where("producto_id = ?", producto.ProductoID).
		Updates(map[string]interface{}{
			"nombre":       producto.Nombre,
			"descripcion":  producto.Descripcion,
			"precio":       producto.Precio,
			"disponible":   producto.Disponible,
			"imagen_url":   producto.ImagenURL,
			"categoria_id": producto.CategoriaID,
		})
	return res.RowsAffected, res.Error
}

func (r *GormProductoRepository) Desactivar(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Producto{}).
		Where("producto_id = ?", id).
		Update("disponible", false)
	return res.RowsAffected, res.Error
}
