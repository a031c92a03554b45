package controllers

import (
	"net/http"
	"strconv"

	"restaurante-api/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func respondError(c *gin.Context, err *apperrors.Error) {
	c.JSON(err.Code, gin.H{"error": err.Message})
}

// parseID reads a numeric path parameter; ok is false after the 400 has
// already been written.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identificador inválido"})
		return 0, false
	}
	return uint(id), true
}
