package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurante-api/cache"
	"restaurante-api/config"
	"restaurante-api/controllers"
	"restaurante-api/database"
	"restaurante-api/events"
	"restaurante-api/logger"
	"restaurante-api/models"
	"restaurante-api/repository"
	"restaurante-api/routes"
	"restaurante-api/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// Logger is not up yet.
		panic("failed to load configuration: " + err.Error())
	}

	logger.Initialize(cfg.Environment)
	defer logger.Log.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Infrastructure ---

	if err := database.Connect(cfg); err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := models.Migrate(database.DB); err != nil {
		zap.L().Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := database.Seed(database.DB, cfg); err != nil {
		zap.L().Fatal("Failed to seed initial data", zap.Error(err))
	}

	redisClient := database.NewRedisClient(cfg)
	menuCache := cache.NewMenuCache(redisClient)
	publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)

	// --- Dependency injection ---

	usuarioRepo := repository.NewGormUsuarioRepository(database.DB)
	categoriaRepo := repository.NewGormCategoriaRepository(database.DB)
	productoRepo := repository.NewGormProductoRepository(database.DB)
	pedidoRepo := repository.NewGormPedidoRepository(database.DB)
	reservaRepo := repository.NewGormReservaRepository(database.DB)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiryMinutes)
	authService := services.NewAuthService(usuarioRepo, tokenService)
	catalogoService := services.NewCatalogoService(categoriaRepo, productoRepo, menuCache)
	pedidoService := services.NewPedidoService(pedidoRepo, productoRepo, publisher)
	reservaService := services.NewReservaService(reservaRepo, publisher)
	usuarioService := services.NewUsuarioService(usuarioRepo)

	ctrl := routes.Controllers{
		Auth:     controllers.NewAuthController(authService),
		Catalogo: controllers.NewCatalogoController(catalogoService),
		Pedidos:  controllers.NewPedidoController(pedidoService),
		Reservas: controllers.NewReservaController(reservaService),
		Usuarios: controllers.NewUsuarioController(usuarioService),
	}

	// --- HTTP server ---

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Register(r, tokenService, ctrl)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Restaurante API starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down Restaurante API...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			zap.L().Error("Failed to close Kafka publisher", zap.Error(err))
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zap.L().Error("Failed to close Redis", zap.Error(err))
		}
	}

	zap.L().Info("Restaurante API stopped gracefully")
}
