package services

import (
	"context"
	"errors"
	"time"

	"restaurante-api/apperrors"
	"restaurante-api/models"
	"restaurante-api/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CrearUsuarioRequest struct {
	NombreUsuario string `json:"nombreUsuario" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Rol           string `json:"rol" binding:"required,oneof=Admin Empleado Cliente"`
}

type ActualizarUsuarioRequest struct {
	NombreUsuario string `json:"nombreUsuario" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password"`
	Rol           string `json:"rol" binding:"required,oneof=Admin Empleado Cliente"`
}

// UsuarioService is the raw user-management path. Unlike orders and
// reservations, deleting here is a hard delete.
type UsuarioService struct {
	usuarioRepo repository.UsuarioRepository
}

func NewUsuarioService(usuarioRepo repository.UsuarioRepository) *UsuarioService {
	return &UsuarioService{usuarioRepo: usuarioRepo}
}

func (s *UsuarioService) ListarUsuarios(ctx context.Context) ([]models.Usuario, *apperrors.Error) {
	usuarios, err := s.usuarioRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("error al listar los usuarios", err)
	}
	return usuarios, nil
}

func (s *UsuarioService) ObtenerUsuario(ctx context.Context, id uint) (*models.Usuario, *apperrors.Error) {
	usuario, err := s.usuarioRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("usuario no encontrado")
		}
		return nil, apperrors.Internal("error al consultar el usuario", err)
	}
	return usuario, nil
}

func (s *UsuarioService) CrearUsuario(ctx context.Context, req *CrearUsuarioRequest) (*models.Usuario, *apperrors.Error) {
	exists, err := s.usuarioRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Internal("error al verificar el email", err)
	}
	if exists {
		return nil, apperrors.InvalidInput("el email ya está registrado")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("error al generar el hash de la contraseña", err)
	}

	usuario := &models.Usuario{
		NombreUsuario: req.NombreUsuario,
		Email:         req.Email,
		PasswordHash:  string(hashed),
		Rol:           req.Rol,
		FechaRegistro: time.Now().UTC(),
	}
	if err := s.usuarioRepo.Create(ctx, usuario); err != nil {
		return nil, apperrors.Internal("error al crear el usuario", err)
	}
	return usuario, nil
}

// ActualizarUsuario updates the editable fields; the password is rehashed
// only when a new one is provided.
func (s *UsuarioService) ActualizarUsuario(ctx context.Context, id uint, req *ActualizarUsuarioRequest) *apperrors.Error {
	usuario, err := s.usuarioRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("usuario no encontrado")
		}
		return apperrors.Internal("error al consultar el usuario", err)
	}

	usuario.NombreUsuario = req.NombreUsuario
	usuario.Email = req.Email
	usuario.Rol = req.Rol
	if req.Password != "" {
		hashed, herr := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if herr != nil {
			return apperrors.Internal("error al generar el hash de la contraseña", herr)
		}
		usuario.PasswordHash = string(hashed)
	}

	if err := s.usuarioRepo.Update(ctx, usuario); err != nil {
		return apperrors.Internal("error al actualizar el usuario", err)
	}
	return nil
}

func (s *UsuarioService) EliminarUsuario(ctx context.Context, id uint) *apperrors.Error {
	rows, err := s.usuarioRepo.Delete(ctx, id)
	if err != nil {
		return apperrors.Internal("error al eliminar el usuario", err)
	}
	if rows == 0 {
		return apperrors.NotFound("usuario no encontrado")
	}
	return nil
}
