package middleware

import (
	"errors"
	"net/http"
	"strings"

	"restaurante-api/policy"
	"restaurante-api/services"

	"github.com/gin-gonic/gin"
)

// PrincipalKey is the gin context key holding the authenticated caller.
const PrincipalKey = "principal"

// Authenticate validates the bearer token and stores the caller identity
// in the request context.
func Authenticate(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token requerido"})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token inválido o expirado"})
			return
		}

		c.Set(PrincipalKey, policy.Principal{
			UsuarioID: claims.UsuarioID,
			Rol:       claims.Rol,
		})
		c.Next()
	}
}

// RequireRoles rejects callers whose role is not in the allowed set.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := GetPrincipal(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no autenticado"})
			return
		}
		for _, rol := range roles {
			if principal.Rol == rol {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "acceso denegado"})
	}
}

// GetPrincipal extracts the authenticated caller set by Authenticate.
func GetPrincipal(c *gin.Context) (policy.Principal, error) {
	if val, ok := c.Get(PrincipalKey); ok {
		if principal, ok := val.(policy.Principal); ok {
			return principal, nil
		}
	}
	return policy.Principal{}, errors.New("principal not found in context")
}
