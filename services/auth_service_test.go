package services_test

import (
	"context"
	"errors"
	"testing"

	"restaurante-api/models"
	"restaurante-api/services"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ---- mock user repository ----

type mockUsuarioRepo struct {
	usuarios       []models.Usuario
	findAllErr     error
	byEmail        *models.Usuario
	byEmailErr     error
	byID           *models.Usuario
	byIDErr        error
	existsEmail    bool
	existsEmailErr error
	existsRol      bool
	createErr      error
	created        *models.Usuario
	updateErr      error
	deleteRows     int64
	deleteErr      error
}

func (m *mockUsuarioRepo) FindAll(_ context.Context) ([]models.Usuario, error) {
	return m.usuarios, m.findAllErr
}
func (m *mockUsuarioRepo) FindByID(_ context.Context, _ uint) (*models.Usuario, error) {
	return m.byID, m.byIDErr
}
func (m *mockUsuarioRepo) FindByEmail(_ context.Context, _ string) (*models.Usuario, error) {
	return m.byEmail, m.byEmailErr
}
func (m *mockUsuarioRepo) ExistsByEmail(_ context.Context, _ string) (bool, error) {
	return m.existsEmail, m.existsEmailErr
}
func (m *mockUsuarioRepo) ExistsByRol(_ context.Context, _ string) (bool, error) {
	return m.existsRol, nil
}
func (m *mockUsuarioRepo) Create(_ context.Context, usuario *models.Usuario) error {
	if m.createErr != nil {
		return m.createErr
	}
	usuario.UsuarioID = 10
	m.created = usuario
	return nil
}
func (m *mockUsuarioRepo) Update(_ context.Context, _ *models.Usuario) error { return m.updateErr }
func (m *mockUsuarioRepo) Delete(_ context.Context, _ uint) (int64, error) {
	return m.deleteRows, m.deleteErr
}

func newAuthService(repo *mockUsuarioRepo) *services.AuthService {
	tokens := services.NewTokenService("clave-de-prueba", 60)
	return services.NewAuthService(repo, tokens)
}

func hashDe(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hashed)
}

// ---- tests ----

func TestLogin_Exito(t *testing.T) {
	repo := &mockUsuarioRepo{byEmail: &models.Usuario{
		UsuarioID:     3,
		NombreUsuario: "Ana",
		Email:         "ana@example.com",
		PasswordHash:  hashDe(t, "secreto123"),
		Rol:           models.RolCliente,
	}}
	svc := newAuthService(repo)

	resp, serr := svc.Login(context.Background(), "ana@example.com", "secreto123")

	assert.Nil(t, serr)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Ana", resp.NombreUsuario)
	assert.Equal(t, models.RolCliente, resp.Rol)
	assert.False(t, resp.Expiration.IsZero())
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := &mockUsuarioRepo{byEmail: &models.Usuario{
		Email:        "ana@example.com",
		PasswordHash: hashDe(t, "secreto123"),
	}}
	svc := newAuthService(repo)

	_, serr := svc.Login(context.Background(), "ana@example.com", "otra")
	if assert.NotNil(t, serr) {
		assert.Equal(t, 401, serr.Code)
		assert.Equal(t, "credenciales inválidas", serr.Message)
	}
}

func TestLogin_EmailDesconocidoMismoMensaje(t *testing.T) {
	repo := &mockUsuarioRepo{byEmailErr: gorm.ErrRecordNotFound}
	svc := newAuthService(repo)

	_, serr := svc.Login(context.Background(), "nadie@example.com", "lo-que-sea")
	if assert.NotNil(t, serr) {
		assert.Equal(t, 401, serr.Code)
		assert.Equal(t, "credenciales inválidas", serr.Message)
	}
}

func TestRegister_RolPorDefectoCliente(t *testing.T) {
	repo := &mockUsuarioRepo{}
	svc := newAuthService(repo)

	resp, serr := svc.Register(context.Background(), "Luis", "luis@example.com", "secreto123", "")

	assert.Nil(t, serr)
	assert.Equal(t, models.RolCliente, resp.Rol)
	assert.Equal(t, models.RolCliente, repo.created.Rol)
	assert.NotEqual(t, "secreto123", repo.created.PasswordHash)
}

func TestRegister_RolInvalido(t *testing.T) {
	svc := newAuthService(&mockUsuarioRepo{})

	_, serr := svc.Register(context.Background(), "Luis", "luis@example.com", "secreto123", "SuperUsuario")
	if assert.NotNil(t, serr) {
		assert.Equal(t, 400, serr.Code)
	}
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := &mockUsuarioRepo{existsEmail: true}
	svc := newAuthService(repo)

	_, serr := svc.Register(context.Background(), "Luis", "luis@example.com", "secreto123", "")
	if assert.NotNil(t, serr) {
		assert.Equal(t, 400, serr.Code)
		assert.Equal(t, "el email ya está registrado", serr.Message)
	}
}

func TestRegister_ErrorDeRepositorio(t *testing.T) {
	repo := &mockUsuarioRepo{createErr: errors.New("db down")}
	svc := newAuthService(repo)

	_, serr := svc.Register(context.Background(), "Luis", "luis@example.com", "secreto123", models.RolEmpleado)
	if assert.NotNil(t, serr) {
		assert.Equal(t, 500, serr.Code)
	}
}
