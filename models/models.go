package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles de usuario
const (
	RolAdmin    = "Admin"
	RolEmpleado = "Empleado"
	RolCliente  = "Cliente"
)

// Estados de pedido
const (
	PedidoPendiente     = "Pendiente"
	PedidoEnPreparacion = "EnPreparacion"
	PedidoListo         = "Listo"
	PedidoEntregado     = "Entregado"
	PedidoCancelado     = "Cancelado"
)

// Estados de reserva
const (
	ReservaPendiente  = "Pendiente"
	ReservaConfirmada = "Confirmada"
	ReservaCancelada  = "Cancelada"
	ReservaCompletada = "Completada"
)

type Usuario struct {
	UsuarioID     uint      `gorm:"primaryKey;autoIncrement" json:"usuarioId"`
	NombreUsuario string    `gorm:"size:100;not null" json:"nombreUsuario"`
	Email         string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"size:255;not null" json:"-"`
	Rol           string    `gorm:"size:50;not null;default:'Cliente'" json:"rol"`
	FechaRegistro time.Time `gorm:"autoCreateTime" json:"fechaRegistro"`

	Pedidos  []Pedido  `gorm:"foreignKey:UsuarioID" json:"pedidos,omitempty"`
	Reservas []Reserva `gorm:"foreignKey:UsuarioID" json:"reservas,omitempty"`
}

type Categoria struct {
	CategoriaID   uint      `gorm:"primaryKey;autoIncrement" json:"categoriaId"`
	Nombre        string    `gorm:"size:100;not null" json:"nombre"`
	Descripcion   string    `gorm:"size:500" json:"descripcion"`
	Activa        bool      `gorm:"default:true" json:"activa"`
	FechaCreacion time.Time `gorm:"autoCreateTime" json:"fechaCreacion"`
	ImagenURL     string    `gorm:"size:500" json:"imagenUrl"`

	Productos []Producto `gorm:"foreignKey:CategoriaID" json:"productos,omitempty"`
}

type Producto struct {
	ProductoID  uint    `gorm:"primaryKey;autoIncrement" json:"productoId"`
	Nombre      string  `gorm:"size:100;not null" json:"nombre"`
	Descripcion string  `gorm:"size:500" json:"descripcion"`
	Precio      float64 `gorm:"type:decimal(10,2);not null" json:"precio"`
	Disponible  bool    `gorm:"default:true" json:"disponible"`
	ImagenURL   string  `gorm:"size:500" json:"imagenUrl"`
	CategoriaID uint    `gorm:"not null;index" json:"categoriaId"`

	Categoria *Categoria `gorm:"foreignKey:CategoriaID" json:"categoria,omitempty"`
}

type Pedido struct {
	PedidoID         uint      `gorm:"primaryKey;autoIncrement" json:"pedidoId"`
	FechaPedido      time.Time `gorm:"autoCreateTime" json:"fechaPedido"`
	Estado           string    `gorm:"size:50;not null;default:'Pendiente'" json:"estado"`
	Total            float64   `gorm:"type:decimal(12,2)" json:"total"`
	Observaciones    string    `gorm:"size:500" json:"observaciones"`
	DireccionEntrega string    `gorm:"size:200" json:"direccionEntrega"`
	UsuarioID        uint      `gorm:"not null;index" json:"usuarioId"`

	Usuario        *Usuario        `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
	DetallesPedido []DetallePedido `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE" json:"detallesPedido"`
}

type DetallePedido struct {
	DetallePedidoID   uint    `gorm:"primaryKey;autoIncrement" json:"detallePedidoId"`
	Cantidad          int     `gorm:"not null" json:"cantidad"`
	PrecioUnitario    float64 `gorm:"type:decimal(10,2);not null" json:"precioUnitario"`
	Subtotal          float64 `gorm:"type:decimal(12,2)" json:"subtotal"`
	ObservacionesItem string  `gorm:"size:300" json:"observacionesItem"`
	PedidoID          uint    `gorm:"not null;index" json:"pedidoId"`
	ProductoID        uint    `gorm:"not null;constraint:OnDelete:RESTRICT" json:"productoId"`

	Producto *Producto `gorm:"foreignKey:ProductoID" json:"producto,omitempty"`
}

type Reserva struct {
	ReservaID               uint      `gorm:"primaryKey;autoIncrement" json:"reservaId"`
	FechaReserva            string    `gorm:"type:date;not null;index:idx_reservas_slot" json:"fechaReserva"`
	HoraReserva             string    `gorm:"size:5;not null;index:idx_reservas_slot" json:"horaReserva"`
	NumeroPersonas          int       `gorm:"not null" json:"numeroPersonas"`
	Estado                  string    `gorm:"size:50;not null;default:'Pendiente'" json:"estado"`
	ObservacionesEspeciales string    `gorm:"size:500" json:"observacionesEspeciales"`
	FechaCreacion           time.Time `gorm:"autoCreateTime" json:"fechaCreacion"`
	UsuarioID               uint      `gorm:"not null;index" json:"usuarioId"`

	Usuario *Usuario `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
}

// EsEstadoPedidoValido reports whether estado belongs to the closed set of
// order states.
func EsEstadoPedidoValido(estado string) bool {
	switch estado {
	case PedidoPendiente, PedidoEnPreparacion, PedidoListo, PedidoEntregado, PedidoCancelado:
		return true
	}
	return false
}

// EsEstadoReservaValido reports whether estado belongs to the closed set of
// reservation states.
func EsEstadoReservaValido(estado string) bool {
	switch estado {
	case ReservaPendiente, ReservaConfirmada, ReservaCancelada, ReservaCompletada:
		return true
	}
	return false
}

// EsRolValido reports whether rol is one of the known roles.
func EsRolValido(rol string) bool {
	switch rol {
	case RolAdmin, RolEmpleado, RolCliente:
		return true
	}
	return false
}

// Migrate runs the schema auto migration
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Usuario{},
		&Categoria{},
		&Producto{},
		&Pedido{},
		&DetallePedido{},
		&Reserva{},
	)
}
