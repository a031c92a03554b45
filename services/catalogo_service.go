package services

import (
	"context"
	"errors"
	"time"

	"restaurante-api/apperrors"
	"restaurante-api/cache"
	"restaurante-api/models"
	"restaurante-api/repository"

	"gorm.io/gorm"
)

type CrearCategoriaRequest struct {
	Nombre      string `json:"nombre" binding:"required"`
	Descripcion string `json:"descripcion"`
	ImagenURL   string `json:"imagenUrl"`
}

type ActualizarCategoriaRequest struct {
	Nombre      string `json:"nombre" binding:"required"`
	Descripcion string `json:"descripcion"`
	Activa      bool   `json:"activa"`
	ImagenURL   string `json:"imagenUrl"`
}

type CrearProductoRequest struct {
	Nombre      string  `json:"nombre" binding:"required"`
	Descripcion string  `json:"descripcion"`
	Precio      float64 `json:"precio" binding:"required,gt=0"`
	Disponible  bool    `json:"disponible"`
	ImagenURL   string  `json:"imagenUrl"`
	CategoriaID uint    `json:"categoriaId" binding:"required"`
}

// CatalogoService owns categories and products. Listings go through the
// versioned menu cache; every mutation invalidates it.
type CatalogoService struct {
	categoriaRepo repository.CategoriaRepository
	productoRepo  repository.ProductoRepository
	menuCache     *cache.MenuCache
}

func NewCatalogoService(categoriaRepo repository.CategoriaRepository, productoRepo repository.ProductoRepository, menuCache *cache.MenuCache) *CatalogoService {
	return &CatalogoService{
		categoriaRepo: categoriaRepo,
		productoRepo:  productoRepo,
		menuCache:     menuCache,
	}
}

// ListarCategorias returns the active categories with their products.
func (s *CatalogoService) ListarCategorias(ctx context.Context) ([]models.Categoria, *apperrors.Error) {
	categorias, err := s.categoriaRepo.FindActivas(ctx)
	if err != nil {
		return nil, apperrors.Internal("error al listar las categorías", err)
	}
	return categorias, nil
}

// ObtenerCategoria returns a category by id, soft-deleted ones included.
func (s *CatalogoService) ObtenerCategoria(ctx context.Context, id uint) (*models.Categoria, *apperrors.Error) {
	categoria, err := s.categoriaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("categoría no encontrada")
		}
		return nil, apperrors.Internal("error al consultar la categoría", err)
	}
	return categoria, nil
}

func (s *CatalogoService) CrearCategoria(ctx context.Context, req *CrearCategoriaRequest) (*models.Categoria, *apperrors.Error) {
	categoria := &models.Categoria{
		Nombre:        req.Nombre,
		Descripcion:   req.Descripcion,
		Activa:        true,
		FechaCreacion: time.Now().UTC(),
		ImagenURL:     req.ImagenURL,
	}
	if err := s.categoriaRepo.Create(ctx, categoria); err != nil {
		return nil, apperrors.Internal("error al crear la categoría", err)
	}
	s.menuCache.Invalidate(ctx)
	return categoria, nil
}

func (s *CatalogoService) ActualizarCategoria(ctx context.Context, id uint, req *ActualizarCategoriaRequest) *apperrors.Error {
	categoria := &models.Categoria{
		CategoriaID: id,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activa:      req.Activa,
		ImagenURL:   req.ImagenURL,
	}
	rows, err := s.categoriaRepo.Update(ctx, categoria)
	if err != nil {
		return apperrors.Internal("error al actualizar la categoría", err)
	}
	if rows == 0 {
		// The row may have vanished under us; report what is true now.
		exists, eerr := s.categoriaRepo.Exists(ctx, id)
		if eerr != nil {
			return apperrors.Internal("error al verificar la categoría", eerr)
		}
		if !exists {
			return apperrors.NotFound("categoría no encontrada")
		}
	}
	s.menuCache.Invalidate(ctx)
	return nil
}

// EliminarCategoria flips the active flag; the row survives for history.
func (s *CatalogoService) EliminarCategoria(ctx context.Context, id uint) *apperrors.Error {
	rows, err := s.categoriaRepo.Desactivar(ctx, id)
	if err != nil {
		return apperrors.Internal("error al eliminar la categoría", err)
	}
	if rows == 0 {
		return apperrors.NotFound("categoría no encontrada")
	}
	s.menuCache.Invalidate(ctx)
	return nil
}

// ListarProductos returns the available products with their category,
// served from the cache when possible.
func (s *CatalogoService) ListarProductos(ctx context.Context) ([]models.Producto, *apperrors.Error) {
	if productos, ok := s.menuCache.GetProductos(ctx, 0); ok {
		return productos, nil
	}
	productos, err := s.productoRepo.FindDisponibles(ctx)
	if err != nil {
		return nil, apperrors.Internal("error al listar los productos", err)
	}
	s.menuCache.SetProductosAsync(0, productos)
	return productos, nil
}

func (s *CatalogoService) ListarProductosPorCategoria(ctx context.Context, categoriaID uint) ([]models.Producto, *apperrors.Error) {
	if productos, ok := s.menuCache.GetProductos(ctx, categoriaID); ok {
		return productos, nil
	}
	productos, err := s.productoRepo.FindDisponiblesPorCategoria(ctx, categoriaID)
	if err != nil {
		return nil, apperrors.Internal("error al listar los productos", err)
	}
	s.menuCache.SetProductosAsync(categoriaID, productos)
	return productos, nil
}

// ObtenerProducto returns a product by id, unavailable ones included.
func (s *CatalogoService) ObtenerProducto(ctx context.Context, id uint) (*models.Producto, *apperrors.Error) {
	producto, err := s.productoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("producto no encontrado")
		}
		return nil, apperrors.Internal("error al consultar el producto", err)
	}
	return producto, nil
}

func (s *CatalogoService) CrearProducto(ctx context.Context, req *CrearProductoRequest) (*models.Producto, *apperrors.Error) {
	exists, err := s.categoriaRepo.Exists(ctx, req.CategoriaID)
	if err != nil {
		return nil, apperrors.Internal("error al verificar la categoría", err)
	}
	if !exists {
		return nil, apperrors.InvalidInput("la categoría especificada no existe")
	}

	producto := &models.Producto{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Disponible:  req.Disponible,
		ImagenURL:   req.ImagenURL,
		CategoriaID: req.CategoriaID,
	}
	if err := s.productoRepo.Create(ctx, producto); err != nil {
		return nil, apperrors.Internal("error al crear el producto", err)
	}
	s.menuCache.Invalidate(ctx)

	creado, ferr := s.productoRepo.FindByID(ctx, producto.ProductoID)
	if ferr != nil {
		return producto, nil
	}
	return creado, nil
}

func (s *CatalogoService) ActualizarProducto(ctx context.Context, id uint, req *CrearProductoRequest) *apperrors.Error {
	if _, err := s.productoRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("producto no encontrado")
		}
		return apperrors.Internal("error al consultar el producto", err)
	}

	exists, err := s.categoriaRepo.Exists(ctx, req.CategoriaID)
	if err != nil {
		return apperrors.Internal("error al verificar la categoría", err)
	}
	if !exists {
		return apperrors.InvalidInput("la categoría especificada no existe")
	}

	producto := &models.Producto{
		ProductoID:  id,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Disponible:  req.Disponible,
		ImagenURL:   req.ImagenURL,
		CategoriaID: req.CategoriaID,
	}
	rows, uerr := s.productoRepo.Update(ctx, producto)
	if uerr != nil {
		return apperrors.Internal("error al actualizar el producto", uerr)
	}
	if rows == 0 {
		return apperrors.NotFound("producto no encontrado")
	}
	s.menuCache.Invalidate(ctx)
	return nil
}

// EliminarProducto flips the availability flag; historical order lines keep
// their reference.
func (s *CatalogoService) EliminarProducto(ctx context.Context, id uint) *apperrors.Error {
	rows, err := s.productoRepo.Desactivar(ctx, id)
	if err != nil {
		return apperrors.Internal("error al eliminar el producto", err)
	}
	if rows == 0 {
		return apperrors.NotFound("producto no encontrado")
	}
	s.menuCache.Invalidate(ctx)
	return nil
}
