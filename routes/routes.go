package routes

import (
	"restaurante-api/controllers"
	"restaurante-api/middleware"
	"restaurante-api/models"
	"restaurante-api/services"

	"github.com/gin-gonic/gin"
)

// Controllers groups every handler set the router wires up.
type Controllers struct {
	Auth     *controllers.AuthController
	Catalogo *controllers.CatalogoController
	Pedidos  *controllers.PedidoController
	Reservas *controllers.ReservaController
	Usuarios *controllers.UsuarioController
}

// Register mounts the full API surface. Catalog reads are public; every
// other route requires a valid token, with role checks layered on top.
func Register(r *gin.Engine, tokens *services.TokenService, ctrl Controllers) {
	auth := middleware.Authenticate(tokens)
	soloAdmin := middleware.RequireRoles(models.RolAdmin)
	soloPersonal := middleware.RequireRoles(models.RolAdmin, models.RolEmpleado)

	authRoutes := r.Group("/auth", middleware.RateLimitMiddleware())
	{
		authRoutes.POST("/login", ctrl.Auth.Login)
		authRoutes.POST("/register", ctrl.Auth.Register)
	}

	categoriaRoutes := r.Group("/categorias")
	{
		categoriaRoutes.GET("", ctrl.Catalogo.GetCategorias)
		categoriaRoutes.GET("/:id", ctrl.Catalogo.GetCategoria)
		categoriaRoutes.POST("", auth, soloAdmin, ctrl.Catalogo.PostCategoria)
		categoriaRoutes.PUT("/:id", auth, soloAdmin, ctrl.Catalogo.PutCategoria)
		categoriaRoutes.DELETE("/:id", auth, soloAdmin, ctrl.Catalogo.DeleteCategoria)
	}

	productoRoutes := r.Group("/productos")
	{
		productoRoutes.GET("", ctrl.Catalogo.GetProductos)
		productoRoutes.GET("/categoria/:categoriaId", ctrl.Catalogo.GetProductosPorCategoria)
		productoRoutes.GET("/:id", ctrl.Catalogo.GetProducto)
		productoRoutes.POST("", auth, soloAdmin, ctrl.Catalogo.PostProducto)
		productoRoutes.PUT("/:id", auth, soloAdmin, ctrl.Catalogo.PutProducto)
		productoRoutes.DELETE("/:id", auth, soloAdmin, ctrl.Catalogo.DeleteProducto)
	}

	pedidoRoutes := r.Group("/pedidos", auth)
	{
		pedidoRoutes.GET("", soloPersonal, ctrl.Pedidos.GetPedidos)
		pedidoRoutes.GET("/mis-pedidos", ctrl.Pedidos.GetMisPedidos)
		pedidoRoutes.GET("/:id", ctrl.Pedidos.GetPedido)
		pedidoRoutes.POST("", ctrl.Pedidos.PostPedido)
		pedidoRoutes.PUT("/:id/estado", soloPersonal, ctrl.Pedidos.CambiarEstado)
		pedidoRoutes.DELETE("/:id", ctrl.Pedidos.CancelarPedido)
	}

	reservaRoutes := r.Group("/reservas", auth)
	{
		reservaRoutes.GET("", soloPersonal, ctrl.Reservas.GetReservas)
		reservaRoutes.GET("/mis-reservas", ctrl.Reservas.GetMisReservas)
		reservaRoutes.GET("/disponibilidad", ctrl.Reservas.GetDisponibilidad)
		reservaRoutes.GET("/:id", ctrl.Reservas.GetReserva)
		reservaRoutes.POST("", ctrl.Reservas.PostReserva)
		reservaRoutes.PUT("/:id/estado", soloPersonal, ctrl.Reservas.CambiarEstado)
		reservaRoutes.DELETE("/:id", ctrl.Reservas.CancelarReserva)
	}

	usuarioRoutes := r.Group("/usuarios", auth, soloAdmin)
	{
		usuarioRoutes.GET("", ctrl.Usuarios.GetUsuarios)
		usuarioRoutes.GET("/:id", ctrl.Usuarios.GetUsuario)
		usuarioRoutes.POST("", ctrl.Usuarios.PostUsuario)
		usuarioRoutes.PUT("/:id", ctrl.Usuarios.PutUsuario)
		usuarioRoutes.DELETE("/:id", ctrl.Usuarios.DeleteUsuario)
	}
}
