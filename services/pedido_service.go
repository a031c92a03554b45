package services

import (
	"context"
	"errors"
	"math"
	"time"

	"restaurante-api/apperrors"
	"restaurante-api/events"
	"restaurante-api/models"
	"restaurante-api/policy"
	"restaurante-api/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CrearPedidoRequest is the order creation body. The owner comes from the
// authenticated caller, never from the client.
type CrearPedidoRequest struct {
	Observaciones    string                `json:"observaciones"`
	DireccionEntrega string                `json:"direccionEntrega"`
	DetallesPedido   []CrearDetalleRequest `json:"detallesPedido" binding:"required,min=1,dive"`
}

type CrearDetalleRequest struct {
	Cantidad          int    `json:"cantidad" binding:"required,min=1"`
	ProductoID        uint   `json:"productoId" binding:"required"`
	ObservacionesItem string `json:"observacionesItem"`
}

// PedidoCreadoResponse is the created order plus the ids of any lines that
// were dropped because their product no longer exists.
type PedidoCreadoResponse struct {
	*models.Pedido
	ProductosOmitidos []uint `json:"productosOmitidos,omitempty"`
}

type PedidoService struct {
	pedidoRepo   repository.PedidoRepository
	productoRepo repository.ProductoRepository
	publisher    events.Publisher
}

func NewPedidoService(pedidoRepo repository.PedidoRepository, productoRepo repository.ProductoRepository, publisher events.Publisher) *PedidoService {
	return &PedidoService{
		pedidoRepo:   pedidoRepo,
		productoRepo: productoRepo,
		publisher:    publisher,
	}
}

// CrearPedido creates an order for the caller. Each line snapshots the
// current product price; lines whose product does not exist are dropped and
// reported back in ProductosOmitidos. An order with no surviving lines is
// rejected.
func (s *PedidoService) CrearPedido(ctx context.Context, caller policy.Principal, req *CrearPedidoRequest) (*PedidoCreadoResponse, *apperrors.Error) {
	if len(req.DetallesPedido) == 0 {
		return nil, apperrors.InvalidInput("el pedido debe incluir al menos un producto")
	}

	var detalles []models.DetallePedido
	var omitidos []uint
	var total float64

	for _, linea := range req.DetallesPedido {
		producto, err := s.productoRepo.FindByID(ctx, linea.ProductoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				omitidos = append(omitidos, linea.ProductoID)
				continue
			}
			return nil, apperrors.Internal("error al consultar el producto", err)
		}

		subtotal := redondear2(float64(linea.Cantidad) * producto.Precio)
		detalles = append(detalles, models.DetallePedido{
			Cantidad:          linea.Cantidad,
			PrecioUnitario:    producto.Precio,
			Subtotal:          subtotal,
			ObservacionesItem: linea.ObservacionesItem,
			ProductoID:        linea.ProductoID,
		})
		total = redondear2(total + subtotal)
	}

	if len(detalles) == 0 {
		return nil, apperrors.InvalidInput("ninguno de los productos del pedido existe")
	}

	pedido := &models.Pedido{
		FechaPedido:      time.Now().UTC(),
		Estado:           models.PedidoPendiente,
		Total:            total,
		Observaciones:    req.Observaciones,
		DireccionEntrega: req.DireccionEntrega,
		UsuarioID:        caller.UsuarioID,
		DetallesPedido:   detalles,
	}
	if err := s.pedidoRepo.Create(ctx, pedido); err != nil {
		return nil, apperrors.Internal("error al crear el pedido", err)
	}

	if len(omitidos) > 0 {
		zap.L().Warn("Pedido creado con productos omitidos",
			zap.Uint("pedidoId", pedido.PedidoID), zap.Uints("productos", omitidos))
	}
	s.publicar(ctx, events.PedidoCreado, pedido.PedidoID, pedido.Estado, caller.UsuarioID)

	// Reload with products and owner so the response mirrors a GET.
	creado, err := s.pedidoRepo.FindByID(ctx, pedido.PedidoID)
	if err != nil {
		creado = pedido
	}
	return &PedidoCreadoResponse{Pedido: creado, ProductosOmitidos: omitidos}, nil
}

// ObtenerPedido returns one order; readable by its owner or staff.
func (s *PedidoService) ObtenerPedido(ctx context.Context, caller policy.Principal, id uint) (*models.Pedido, *apperrors.Error) {
	pedido, err := s.pedidoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("pedido no encontrado")
		}
		return nil, apperrors.Internal("error al consultar el pedido", err)
	}
	if !policy.PuedeVerPedido(caller, pedido.UsuarioID) {
		return nil, apperrors.Forbidden("no tiene permiso para ver este pedido")
	}
	return pedido, nil
}

// ListarTodos returns every order, newest first. Staff only.
func (s *PedidoService) ListarTodos(ctx context.Context, caller policy.Principal) ([]models.Pedido, *apperrors.Error) {
	if !caller.EsPersonal() {
		return nil, apperrors.Forbidden("acceso restringido al personal")
	}
	pedidos, err := s.pedidoRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("error al listar los pedidos", err)
	}
	return pedidos, nil
}

// ListarMisPedidos returns the caller's orders, newest first.
func (s *PedidoService) ListarMisPedidos(ctx context.Context, caller policy.Principal) ([]models.Pedido, *apperrors.Error) {
	pedidos, err := s.pedidoRepo.FindByUsuario(ctx, caller.UsuarioID)
	if err != nil {
		return nil, apperrors.Internal("error al listar los pedidos", err)
	}
	return pedidos, nil
}

// CambiarEstado moves an order to any state of the closed set. There is no
// transition table on purpose: staff may move an order back and forth.
func (s *PedidoService) CambiarEstado(ctx context.Context, caller policy.Principal, id uint, estado string) *apperrors.Error {
	if !policy.PuedeCambiarEstados(caller) {
		return apperrors.Forbidden("acceso restringido al personal")
	}
	if !models.EsEstadoPedidoValido(estado) {
		return apperrors.InvalidInput("estado inválido")
	}

	rows, err := s.pedidoRepo.UpdateEstado(ctx, id, estado)
	if err != nil {
		return apperrors.Internal("error al actualizar el estado", err)
	}
	if rows == 0 {
		return apperrors.NotFound("pedido no encontrado")
	}

	s.publicar(ctx, events.PedidoEstadoCambiado, id, estado, caller.UsuarioID)
	return nil
}

// CancelarPedido is the self-service cancellation: owner or admin, and only
// while the order is still pending.
func (s *PedidoService) CancelarPedido(ctx context.Context, caller policy.Principal, id uint) *apperrors.Error {
	pedido, err := s.pedidoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("pedido no encontrado")
		}
		return apperrors.Internal("error al consultar el pedido", err)
	}

	if !policy.PuedeCancelarPedido(caller, pedido.UsuarioID) {
		return apperrors.Forbidden("no tiene permiso para cancelar este pedido")
	}
	if pedido.Estado != models.PedidoPendiente {
		return apperrors.InvalidInput("solo se pueden cancelar pedidos pendientes")
	}

	rows, uerr := s.pedidoRepo.UpdateEstado(ctx, id, models.PedidoCancelado)
	if uerr != nil {
		return apperrors.Internal("error al cancelar el pedido", uerr)
	}
	if rows == 0 {
		return apperrors.NotFound("pedido no encontrado")
	}

	s.publicar(ctx, events.PedidoEstadoCambiado, id, models.PedidoCancelado, caller.UsuarioID)
	return nil
}

func (s *PedidoService) publicar(ctx context.Context, tipo string, id uint, estado string, usuarioID uint) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, events.LifecycleEvent{
		Tipo:      tipo,
		EntidadID: id,
		Estado:    estado,
		UsuarioID: usuarioID,
		Timestamp: time.Now().UTC(),
	})
}

func redondear2(v float64) float64 {
	return math.Round(v*100) / 100
}
