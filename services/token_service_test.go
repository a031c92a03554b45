package services_test

import (
	"testing"
	"time"

	"restaurante-api/models"
	"restaurante-api/services"

	"github.com/stretchr/testify/assert"
)

func TestGenerateToken_Roundtrip(t *testing.T) {
	svc := services.NewTokenService("clave-de-prueba", 60)
	usuario := &models.Usuario{
		UsuarioID:     12,
		NombreUsuario: "Ana",
		Email:         "ana@example.com",
		Rol:           models.RolEmpleado,
	}

	token, expiration, err := svc.GenerateToken(usuario)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiration.After(time.Now()))

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(12), claims.UsuarioID)
	assert.Equal(t, "Ana", claims.NombreUsuario)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, models.RolEmpleado, claims.Rol)
}

func TestValidateToken_ClaveIncorrecta(t *testing.T) {
	emisor := services.NewTokenService("clave-a", 60)
	receptor := services.NewTokenService("clave-b", 60)

	token, _, err := emisor.GenerateToken(&models.Usuario{UsuarioID: 1, Rol: models.RolCliente})
	assert.NoError(t, err)

	_, err = receptor.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expirado(t *testing.T) {
	svc := services.NewTokenService("clave-de-prueba", -1)

	token, _, err := svc.GenerateToken(&models.Usuario{UsuarioID: 1, Rol: models.RolCliente})
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Basura(t *testing.T) {
	svc := services.NewTokenService("clave-de-prueba", 60)

	_, err := svc.ValidateToken("no-es-un-jwt")
	assert.Error(t, err)
}
