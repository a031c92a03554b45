package services_test

import (
	"context"
	"errors"
	"testing"

	"restaurante-api/events"
	"restaurante-api/models"
	"restaurante-api/policy"
	"restaurante-api/services"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// ---- mock order repository ----

type mockPedidoRepo struct {
	pedidos         []models.Pedido
	findAllErr      error
	findByIDPedido  *models.Pedido
	findByIDErr     error
	createErr       error
	created         *models.Pedido
	updateRows      int64
	updateErr       error
	updatedEstado   string
	updatedPedidoID uint
}

func (m *mockPedidoRepo) FindAll(_ context.Context) ([]models.Pedido, error) {
	return m.pedidos, m.findAllErr
}
func (m *mockPedidoRepo) FindByUsuario(_ context.Context, _ uint) ([]models.Pedido, error) {
	return m.pedidos, m.findAllErr
}
func (m *mockPedidoRepo) FindByID(_ context.Context, _ uint) (*models.Pedido, error) {
	return m.findByIDPedido, m.findByIDErr
}
func (m *mockPedidoRepo) Create(_ context.Context, pedido *models.Pedido) error {
	if m.createErr != nil {
		return m.createErr
	}
	pedido.PedidoID = 42
	m.created = pedido
	return nil
}
func (m *mockPedidoRepo) UpdateEstado(_ context.Context, id uint, estado string) (int64, error) {
	m.updatedPedidoID = id
	m.updatedEstado = estado
	return m.updateRows, m.updateErr
}

// ---- mock product repository ----

type mockProductoRepo struct {
	productos      map[uint]*models.Producto
	disponibles    []models.Producto
	disponiblesErr error
	findErr        error
	createErr      error
	created        *models.Producto
	updateRows     int64
	updateErr      error
	desactivarRows int64
}

func (m *mockProductoRepo) FindDisponibles(_ context.Context) ([]models.Producto, error) {
	return m.disponibles, m.disponiblesErr
}
func (m *mockProductoRepo) FindDisponiblesPorCategoria(_ context.Context, _ uint) ([]models.Producto, error) {
	return m.disponibles, m.disponiblesErr
}
func (m *mockProductoRepo) FindByID(_ context.Context, id uint) (*models.Producto, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if p, ok := m.productos[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockProductoRepo) Create(_ context.Context, producto *models.Producto) error {
	if m.createErr != nil {
		return m.createErr
	}
	producto.ProductoID = 31
	m.created = producto
	return nil
}
func (m *mockProductoRepo) Update(_ context.Context, _ *models.Producto) (int64, error) {
	return m.updateRows, m.updateErr
}
func (m *mockProductoRepo) Desactivar(_ context.Context, _ uint) (int64, error) {
	return m.desactivarRows, nil
}

// ---- mock publisher ----

type mockPublisher struct {
	published []events.LifecycleEvent
}

func (m *mockPublisher) Publish(_ context.Context, evt events.LifecycleEvent) {
	m.published = append(m.published, evt)
}
func (m *mockPublisher) Close() error { return nil }

// ---- helpers ----

var (
	cliente  = policy.Principal{UsuarioID: 7, Rol: models.RolCliente}
	empleado = policy.Principal{UsuarioID: 2, Rol: models.RolEmpleado}
	admin    = policy.Principal{UsuarioID: 1, Rol: models.RolAdmin}
)

func catalogoConPrecios() *mockProductoRepo {
	return &mockProductoRepo{productos: map[uint]*models.Producto{
		1: {ProductoID: 1, Nombre: "Lomo saltado", Precio: 9.50, Disponible: true},
		2: {ProductoID: 2, Nombre: "Limonada", Precio: 3.25, Disponible: true},
	}}
}

// ---- tests ----

func TestCrearPedido_CalculaTotales(t *testing.T) {
	repo := &mockPedidoRepo{findByIDErr: gorm.ErrRecordNotFound}
	pub := &mockPublisher{}
	svc := services.NewPedidoService(repo, catalogoConPrecios(), pub)

	req := &services.CrearPedidoRequest{
		DireccionEntrega: "Av. Principal 123",
		DetallesPedido: []services.CrearDetalleRequest{
			{ProductoID: 1, Cantidad: 2},
		},
	}
	resp, serr := svc.CrearPedido(context.Background(), cliente, req)

	assert.Nil(t, serr)
	assert.NotNil(t, resp)
	assert.Equal(t, 19.00, resp.Total)
	assert.Equal(t, models.PedidoPendiente, resp.Estado)
	assert.Equal(t, cliente.UsuarioID, resp.UsuarioID)
	assert.Len(t, repo.created.DetallesPedido, 1)
	assert.Equal(t, 9.50, repo.created.DetallesPedido[0].PrecioUnitario)
	assert.Equal(t, 19.00, repo.created.DetallesPedido[0].Subtotal)
	assert.Empty(t, resp.ProductosOmitidos)

	if assert.Len(t, pub.published, 1) {
		assert.Equal(t, events.PedidoCreado, pub.published[0].Tipo)
	}
}

func TestCrearPedido_OmiteProductosInexistentes(t *testing.T) {
	repo := &mockPedidoRepo{findByIDErr: gorm.ErrRecordNotFound}
	svc := services.NewPedidoService(repo, catalogoConPrecios(), &mockPublisher{})

	req := &services.CrearPedidoRequest{
		DetallesPedido: []services.CrearDetalleRequest{
			{ProductoID: 1, Cantidad: 1},
			{ProductoID: 999, Cantidad: 3},
			{ProductoID: 2, Cantidad: 2},
		},
	}
	resp, serr := svc.CrearPedido(context.Background(), cliente, req)

	assert.Nil(t, serr)
	assert.Equal(t, []uint{999}, resp.ProductosOmitidos)
	assert.Len(t, repo.created.DetallesPedido, 2)
	assert.Equal(t, 16.00, resp.Total) // 9.50 + 2*3.25
}

func TestCrearPedido_TodosLosProductosInexistentes(t *testing.T) {
	repo := &mockPedidoRepo{}
	svc := services.NewPedidoService(repo, catalogoConPrecios(), &mockPublisher{})

	req := &services.CrearPedidoRequest{
		DetallesPedido: []services.CrearDetalleRequest{
			{ProductoID: 998, Cantidad: 1},
			{ProductoID: 999, Cantidad: 1},
		},
	}
	_, serr := svc.CrearPedido(context.Background(), cliente, req)

	if assert.NotNil(t, serr) {
		assert.Equal(t, 400, serr.Code)
	}
	assert.Nil(t, repo.created)
}

func TestCrearPedido_SinLineas(t *testing.T) {
	svc := services.NewPedidoService(&mockPedidoRepo{}, catalogoConPrecios(), &mockPublisher{})

	_, serr := svc.CrearPedido(context.Background(), cliente, &services.CrearPedidoRequest{})
	if assert.NotNil(t, serr) {
		assert.Equal(t, 400, serr.Code)
	}
}

func TestObtenerPedido_DuenoYPersonal(t *testing.T) {
	pedido := &models.Pedido{PedidoID: 5, UsuarioID: cliente.UsuarioID, Estado: models.PedidoPendiente}
	repo := &mockPedidoRepo{findByIDPedido: pedido}
	svc := services.NewPedidoService(repo, catalogoConPrecios(), &mockPublisher{})

	got, serr := svc.ObtenerPedido(context.Background(), cliente, 5)
	assert.Nil(t, serr)
	assert.Equal(t, pedido, got)

	got, serr = svc.ObtenerPedido(context.Background(), empleado, 5)
	assert.Nil(t, serr)
	assert.Equal(t, pedido, got)
}

func TestObtenerPedido_OtroClienteProhibido(t *testing.T) {
	pedido := &models.Pedido{PedidoID: 5, UsuarioID: 99}
	repo := &mockPedidoRepo{findByIDPedido: pedido}
	svc := services.NewPedidoService(repo, catalogoConPrecios(), &mockPublisher{})

	_, serr := svc.ObtenerPedido(context.Background(), cliente, 5)
	if assert.NotNil(t, serr) {
		assert.Equal(t, 403, serr.Code)
	}
}

func TestObtenerPedido_NoExiste(t *testing.T) {
	repo := &mockPedidoRepo{findByIDErr: gorm.ErrRecordNotFound}
	svc := services.NewPedidoService(repo, catalogoConPrecios(), &mockPublisher{})

	_, serr := svc.ObtenerPedido(context.Background(), cliente, 5)
	if assert.NotNil(t, serr) {
		assert.Equal(t, 404, serr.Code)
	}
}

func TestListarTodos_SoloPersonal(t *testing.T) {
	repo := &mockPedidoRepo{pedidos: []models.Pedido{{PedidoID: 1}, {PedidoID: 2}}}
	svc := services.NewPedidoService(repo, catalogoConPrecios(), &mockPublisher{})

	pedidos, serr := svc.ListarTodos(context.Background(), empleado)
	assert.Nil(t, serr)
	assert.Len(t, pedidos, 2)

	_, serr = svc.ListarTodos(context.Background(), cliente)
	if assert.NotNil(t, serr) {
		assert.Equal(t, 403, serr.Code)
	}
}

func TestCambiarEstado_EstadoInvalido(t *testing.T) {
	svc := services.NewPedidoService(&mockPedidoRepo{}, catalogoConPrecios(), &mockPublisher{})

	serr := svc.CambiarEstado(context.Background(), empleado, 5, "Volando")
	if assert.NotNil(t, serr) {
		assert.Equal(t, 400, serr.Code)
	}
}

func TestCambiarEstado_ClienteProhibido(t *testing.T) {
	svc := services.NewPedidoService(&mockPedidoRepo{}, catalogoConPrecios(), &mockPublisher{})

	serr := svc.CambiarEstado(context.Background(), cliente, 5, models.PedidoListo)
	if assert.NotNil(t, serr) {
		assert.Equal(t, 403, serr.Code)
	}
}

func TestCambiarEstado_PedidoInexistente(t *testing.T) {
	repo := &mockPedidoRepo{updateRows: 0}
	svc := services.NewPedidoService(repo, catalogoConPrecios(), &mockPublisher{})

	serr := svc.CambiarEstado(context.Background(), empleado, 5, models.PedidoListo)
	if assert.NotNil(t, serr) {
		assert.Equal(t, 404, serr.Code)
	}
}

func TestCambiarEstado_PublicaEvento(t *testing.T) {
	repo := &mockPedidoRepo{updateRows: 1}
	pub := &mockPublisher{}
	svc := services.NewPedidoService(repo, catalogoConPrecios(), pub)

	serr := svc.CambiarEstado(context.Background(), empleado, 5, models.PedidoEnPreparacion)
	assert.Nil(t, serr)
	assert.Equal(t, models.PedidoEnPreparacion, repo.updatedEstado)
	if assert.Len(t, pub.published, 1) {
		assert.Equal(t, events.PedidoEstadoCambiado, pub.published[0].Tipo)
		assert.Equal(t, uint(5), pub.published[0].EntidadID)
	}
}

func TestCancelarPedido_SoloPendientes(t *testing.T) {
	pedido := &models.Pedido{PedidoID: 5, UsuarioID: cliente.UsuarioID, Estado: models.PedidoEntregado}
	repo := &mockPedidoRepo{findByIDPedido: pedido, updateRows: 1}
	svc := services.NewPedidoService(repo, catalogoConPrecios(), &mockPublisher{})

	serr := svc.CancelarPedido(context.Background(), cliente, 5)
	if assert.NotNil(t, serr) {
		assert.Equal(t, 400, serr.Code)
		assert.Equal(t, "solo se pueden cancelar pedidos pendientes", serr.Message)
	}
}

func TestCancelarPedido_DuenoPendiente(t *testing.T) {
	pedido := &models.Pedido{PedidoID: 5, UsuarioID: cliente.UsuarioID, Estado: models.PedidoPendiente}
	repo := &mockPedidoRepo{findByIDPedido: pedido, updateRows: 1}
	svc := services.NewPedidoService(repo, catalogoConPrecios(), &mockPublisher{})

	serr := svc.CancelarPedido(context.Background(), cliente, 5)
	assert.Nil(t, serr)
	assert.Equal(t, models.PedidoCancelado, repo.updatedEstado)
}

func TestCancelarPedido_EmpleadoNoEsDueno(t *testing.T) {
	// Un empleado puede cambiar estados, pero la cancelación directa queda
	// reservada al dueño o a un admin.
	pedido := &models.Pedido{PedidoID: 5, UsuarioID: cliente.UsuarioID, Estado: models.PedidoPendiente}
	repo := &mockPedidoRepo{findByIDPedido: pedido, updateRows: 1}
	svc := services.NewPedidoService(repo, catalogoConPrecios(), &mockPublisher{})

	serr := svc.CancelarPedido(context.Background(), empleado, 5)
	if assert.NotNil(t, serr) {
		assert.Equal(t, 403, serr.Code)
	}
}

func TestCancelarPedido_AdminPuede(t *testing.T) {
	pedido := &models.Pedido{PedidoID: 5, UsuarioID: cliente.UsuarioID, Estado: models.PedidoPendiente}
	repo := &mockPedidoRepo{findByIDPedido: pedido, updateRows: 1}
	svc := services.NewPedidoService(repo, catalogoConPrecios(), &mockPublisher{})

	serr := svc.CancelarPedido(context.Background(), admin, 5)
	assert.Nil(t, serr)
}

func TestCrearPedido_ErrorDeRepositorio(t *testing.T) {
	repo := &mockPedidoRepo{createErr: errors.New("db down")}
	svc := services.NewPedidoService(repo, catalogoConPrecios(), &mockPublisher{})

	req := &services.CrearPedidoRequest{
		DetallesPedido: []services.CrearDetalleRequest{{ProductoID: 1, Cantidad: 1}},
	}
	_, serr := svc.CrearPedido(context.Background(), cliente, req)
	if assert.NotNil(t, serr) {
		assert.Equal(t, 500, serr.Code)
	}
}
