package controllers

import (
	"context"
	"net/http"

	"restaurante-api/apperrors"
	"restaurante-api/models"
	"restaurante-api/services"

	"github.com/gin-gonic/gin"
)

// CatalogoServiceAPI defines the interface for catalog operations
type CatalogoServiceAPI interface {
	ListarCategorias(ctx context.Context) ([]models.Categoria, *apperrors.Error)
	ObtenerCategoria(ctx context.Context, id uint) (*models.Categoria, *apperrors.Error)
	CrearCategoria(ctx context.Context, req *services.CrearCategoriaRequest) (*models.Categoria, *apperrors.Error)
	ActualizarCategoria(ctx context.Context, id uint, req *services.ActualizarCategoriaRequest) *apperrors.Error
	EliminarCategoria(ctx context.Context, id uint) *apperrors.Error

	ListarProductos(ctx context.Context) ([]models.Producto, *apperrors.Error)
	ListarProductosPorCategoria(ctx context.Context, categoriaID uint) ([]models.Producto, *apperrors.Error)
	ObtenerProducto(ctx context.Context, id uint) (*models.Producto, *apperrors.Error)
	CrearProducto(ctx context.Context, req *services.CrearProductoRequest) (*models.Producto, *apperrors.Error)
	ActualizarProducto(ctx context.Context, id uint, req *services.CrearProductoRequest) *apperrors.Error
	EliminarProducto(ctx context.Context, id uint) *apperrors.Error
}

type CatalogoController struct {
	service CatalogoServiceAPI
}

func NewCatalogoController(service CatalogoServiceAPI) *CatalogoController {
	return &CatalogoController{service: service}
}

func (ctrl *CatalogoController) GetCategorias(c *gin.Context) {
	categorias, serr := ctrl.service.ListarCategorias(c.Request.Context())
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusOK, categorias)
}

func (ctrl *CatalogoController) GetCategoria(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	categoria, serr := ctrl.service.ObtenerCategoria(c.Request.Context(), id)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusOK, categoria)
}

func (ctrl *CatalogoController) PostCategoria(c *gin.Context) {
	var req services.CrearCategoriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la solicitud inválido", "details": err.Error()})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validación fallida", "details": err.Error()})
		return
	}

	categoria, serr := ctrl.service.CrearCategoria(c.Request.Context(), &req)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusCreated, categoria)
}

func (ctrl *CatalogoController) PutCategoria(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.ActualizarCategoriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la solicitud inválido", "details": err.Error()})
		return
	}

	if serr := ctrl.service.ActualizarCategoria(c.Request.Context(), id, &req); serr != nil {
		respondError(c, serr)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteCategoria soft-deletes: the category is flagged inactive.
func (ctrl *CatalogoController) DeleteCategoria(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if serr := ctrl.service.EliminarCategoria(c.Request.Context(), id); serr != nil {
		respondError(c, serr)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *CatalogoController) GetProductos(c *gin.Context) {
	productos, serr := ctrl.service.ListarProductos(c.Request.Context())
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusOK, productos)
}

func (ctrl *CatalogoController) GetProductosPorCategoria(c *gin.Context) {
	categoriaID, ok := parseID(c, "categoriaId")
	if !ok {
		return
	}

	productos, serr := ctrl.service.ListarProductosPorCategoria(c.Request.Context(), categoriaID)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusOK, productos)
}

func (ctrl *CatalogoController) GetProducto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	producto, serr := ctrl.service.ObtenerProducto(c.Request.Context(), id)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusOK, producto)
}

func (ctrl *CatalogoController) PostProducto(c *gin.Context) {
	var req services.CrearProductoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la solicitud inválido", "details": err.Error()})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validación fallida", "details": err.Error()})
		return
	}

	producto, serr := ctrl.service.CrearProducto(c.Request.Context(), &req)
	if serr != nil {
		respondError(c, serr)
		return
	}
	c.JSON(http.StatusCreated, producto)
}

func (ctrl *CatalogoController) PutProducto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.CrearProductoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la solicitud inválido", "details": err.Error()})
		return
	}

	if serr := ctrl.service.ActualizarProducto(c.Request.Context(), id, &req); serr != nil {
		respondError(c, serr)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteProducto soft-deletes: the product is flagged unavailable so
// existing order lines keep a valid reference.
func (ctrl *CatalogoController) DeleteProducto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if serr := ctrl.service.EliminarProducto(c.Request.Context(), id); serr != nil {
		respondError(c, serr)
		return
	}
	c.Status(http.StatusNoContent)
}
