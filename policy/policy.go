// Package policy concentrates every authorization decision of the API as
// (caller, resource) predicates, so the rules can be audited and tested
// apart from the HTTP layer.
package policy

import "restaurante-api/models"

// Principal identifies the authenticated caller.
type Principal struct {
	UsuarioID uint
	Rol       string
}

// EsPersonal reports whether the caller works for the restaurant.
func (p Principal) EsPersonal() bool {
	return p.Rol == models.RolAdmin || p.Rol == models.RolEmpleado
}

// EsAdmin reports whether the caller is an administrator.
func (p Principal) EsAdmin() bool {
	return p.Rol == models.RolAdmin
}

// PuedeVerPedido: the owner, or staff, may read an order.
func PuedeVerPedido(p Principal, duenoID uint) bool {
	return p.UsuarioID == duenoID || p.EsPersonal()
}

// PuedeCancelarPedido: only the owner or an admin may self-cancel an order.
// The pending-status precondition lives in the service, not here.
func PuedeCancelarPedido(p Principal, duenoID uint) bool {
	return p.UsuarioID == duenoID || p.EsAdmin()
}

// PuedeCambiarEstados: staff manage order and reservation lifecycles.
func PuedeCambiarEstados(p Principal) bool {
	return p.EsPersonal()
}

// PuedeVerReserva: the owner, or staff, may read a reservation.
func PuedeVerReserva(p Principal, duenoID uint) bool {
	return p.UsuarioID == duenoID || p.EsPersonal()
}

// PuedeCancelarReserva: only the owner or an admin may cancel a reservation.
func PuedeCancelarReserva(p Principal, duenoID uint) bool {
	return p.UsuarioID == duenoID || p.EsAdmin()
}

// PuedeAdministrarCatalogo: category and product mutations are admin only.
func PuedeAdministrarCatalogo(p Principal) bool {
	return p.EsAdmin()
}
