package services

import (
	"fmt"
	"strconv"
	"time"

	"restaurante-api/models"

	"github.com/golang-jwt/jwt/v4"
)

// Claims are the identity claims carried by an access token.
type Claims struct {
	UsuarioID     uint
	NombreUsuario string
	Email         string
	Rol           string
}

// TokenService is responsible for creating and validating JWTs.
type TokenService struct {
	secretKey []byte
	expiry    time.Duration
}

func NewTokenService(secret string, expiryMinutes int) *TokenService {
	return &TokenService{
		secretKey: []byte(secret),
		expiry:    time.Duration(expiryMinutes) * time.Minute,
	}
}

// GenerateToken creates a signed access token for the user and returns it
// with its expiration time.
func (s *TokenService) GenerateToken(usuario *models.Usuario) (string, time.Time, error) {
	expiration := time.Now().Add(s.expiry)
	claims := jwt.MapClaims{
		"sub":           strconv.FormatUint(uint64(usuario.UsuarioID), 10),
		"nombreUsuario": usuario.NombreUsuario,
		"email":         usuario.Email,
		"rol":           usuario.Rol,
		"exp":           expiration.Unix(),
		"iat":           time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiration, nil
}

// ValidateToken parses a token string and returns its identity claims.
func (s *TokenService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token: sub claim missing")
	}
	usuarioID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid token: sub claim is not numeric")
	}

	nombre, _ := mapClaims["nombreUsuario"].(string)
	email, _ := mapClaims["email"].(string)
	rol, ok := mapClaims["rol"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token: rol claim missing")
	}

	return &Claims{
		UsuarioID:     uint(usuarioID),
		NombreUsuario: nombre,
		Email:         email,
		Rol:           rol,
	}, nil
}
