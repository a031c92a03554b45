package repository

import (
	"context"

	"restaurante-api/models"

	"gorm.io/gorm"
)

// UsuarioRepository defines the data access for users
type UsuarioRepository interface {
	FindAll(ctx context.Context) ([]models.Usuario, error)
	FindByID(ctx context.Context, id uint) (*models.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*models.Usuario, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByRol(ctx context.Context, rol string) (bool, error)
	Create(ctx context.Context, usuario *models.Usuario) error
	Update(ctx context.Context, usuario *models.Usuario) error
	Delete(ctx context.Context, id uint) (int64, error)
}

type GormUsuarioRepository struct {
	db *gorm.DB
}

func NewGormUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &GormUsuarioRepository{db: db}
}

func (r *GormUsuarioRepository) FindAll(ctx context.Context) ([]models.Usuario, error) {
	var usuarios []models.Usuario
	err := r.db.WithContext(ctx).Order("usuario_id").Find(&usuarios).Error
	return usuarios, err
}

func (r *GormUsuarioRepository) FindByID(ctx context.Context, id uint) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := r.db.WithContext(ctx).First(&usuario, id).Error; err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (r *GormUsuarioRepository) FindByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&usuario).Error; err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (r *GormUsuarioRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Usuario{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *GormUsuarioRepository) ExistsByRol(ctx context.Context, rol string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Usuario{}).Where("rol = ?", rol).Count(&count).Error
	return count > 0, err
}

func (r *GormUsuarioRepository) Create(ctx context.Context, usuario *models.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

func (r *GormUsuarioRepository) Update(ctx context.Context, usuario *models.Usuario) error {
	return r.db.WithContext(ctx).Save(usuario).Error
}

func (r *GormUsuarioRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Usuario{}, id)
	return res.RowsAffected, res.Error
}
