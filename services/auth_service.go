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

// LoginResponse is the body returned by both login and register.
type LoginResponse struct {
	Token         string    `json:"token"`
	NombreUsuario string    `json:"nombreUsuario"`
	Email         string    `json:"email"`
	Rol           string    `json:"rol"`
	Expiration    time.Time `json:"expiration"`
}

type AuthService struct {
	usuarioRepo  repository.UsuarioRepository
	tokenService *TokenService
}

func NewAuthService(usuarioRepo repository.UsuarioRepository, tokenService *TokenService) *AuthService {
	return &AuthService{usuarioRepo: usuarioRepo, tokenService: tokenService}
}

// Login authenticates by email and password. The failure message is the
// same for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, *apperrors.Error) {
	usuario, err := s.usuarioRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("credenciales inválidas")
		}
		return nil, apperrors.Internal("error al buscar el usuario", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("credenciales inválidas")
	}

	return s.issueToken(usuario)
}

// Register creates an account and logs it in. The role defaults to Cliente
// and must belong to the known role set when provided.
func (s *AuthService) Register(ctx context.Context, nombreUsuario, email, password, rol string) (*LoginResponse, *apperrors.Error) {
	if rol == "" {
		rol = models.RolCliente
	}
	if !models.EsRolValido(rol) {
		return nil, apperrors.InvalidInput("rol inválido")
	}

	exists, err := s.usuarioRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("error al verificar el email", err)
	}
	if exists {
		return nil, apperrors.InvalidInput("el email ya está registrado")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("error al generar el hash de la contraseña", err)
	}

	usuario := &models.Usuario{
		NombreUsuario: nombreUsuario,
		Email:         email,
		PasswordHash:  string(hashed),
		Rol:           rol,
		FechaRegistro: time.Now().UTC(),
	}
	if err := s.usuarioRepo.Create(ctx, usuario); err != nil {
		return nil, apperrors.Internal("error al crear la cuenta", err)
	}

	return s.issueToken(usuario)
}

func (s *AuthService) issueToken(usuario *models.Usuario) (*LoginResponse, *apperrors.Error) {
	token, expiration, err := s.tokenService.GenerateToken(usuario)
	if err != nil {
		return nil, apperrors.Internal("error al generar el token", err)
	}
	return &LoginResponse{
		Token:         token,
		NombreUsuario: usuario.NombreUsuario,
		Email:         usuario.Email,
		Rol:           usuario.Rol,
		Expiration:    expiration,
	}, nil
}
