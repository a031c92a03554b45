package database

import (
	"restaurante-api/config"
	"restaurante-api/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed creates the default admin account and the base menu categories on
// first boot. Both checks are idempotent.
func Seed(db *gorm.DB, cfg *config.Config) error {
	if err := seedAdmin(db, cfg); err != nil {
		return err
	}
	return seedCategorias(db)
}

func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.Usuario{}).Where("rol = ?", models.RolAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := cfg.AdminPassword
	if password == "" {
		zap.L().Warn("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Usuario{
		NombreUsuario: "Administrador",
		Email:         cfg.AdminEmail,
		PasswordHash:  string(hashed),
		Rol:           models.RolAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	zap.L().Info("Seeded default admin user", zap.String("email", admin.Email))
	return nil
}

func seedCategorias(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Categoria{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categorias := []models.Categoria{
		{Nombre: "Entradas", Descripcion: "Aperitivos y entradas", Activa: true},
		{Nombre: "Platos Principales", Descripcion: "Platos fuertes", Activa: true},
		{Nombre: "Postres", Descripcion: "Postres y dulces", Activa: true},
		{Nombre: "Bebidas", Descripcion: "Bebidas frías y calientes", Activa: true},
	}
	if err := db.Create(&categorias).Error; err != nil {
		return err
	}
	zap.L().Info("Seeded base categories", zap.Int("count", len(categorias)))
	return nil
}
