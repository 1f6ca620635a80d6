package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/toa-ordenes-api/internal/application/auth"
	"github.com/jhoicas/toa-ordenes-api/internal/application/comentarios"
	"github.com/jhoicas/toa-ordenes-api/internal/application/historia"
	"github.com/jhoicas/toa-ordenes-api/internal/application/ordenes"
	"github.com/jhoicas/toa-ordenes-api/internal/application/tecnicos"
	"github.com/jhoicas/toa-ordenes-api/internal/application/usecase"
	"github.com/jhoicas/toa-ordenes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/toa-ordenes-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/toa-ordenes-api/internal/interfaces/http"
	"github.com/jhoicas/toa-ordenes-api/pkg/config"
	"github.com/jhoicas/toa-ordenes-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	empresaRepo := postgres.NewEmpresaRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	ordenRepo := postgres.NewOrdenTrabajoRepository(pool)
	comentarioRepo := postgres.NewComentarioRepository(pool)
	tecnicoRepo := postgres.NewTecnicoSupervisorRepository(pool)
	historiaRepo := postgres.NewHistoriaOTRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	imageStore, err := storage.NewImageProcessor(cfg.Media.UploadPath, cfg.Media.PlaceholderPath)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento de imágenes")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	comentarioUC := comentarios.NewUseCase(comentarioRepo, ordenRepo, userRepo, imageStore)
	ordenUC := ordenes.NewUseCase(ordenRepo, empresaRepo)
	historiaUC := historia.NewUseCase(txRunner, historiaRepo, empresaRepo)
	tecnicoUC := tecnicos.NewUseCase(tecnicoRepo, userRepo)
	userUC := usecase.NewUserUseCase(userRepo, empresaRepo)
	empresaUC := usecase.NewEmpresaUseCase(empresaRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 * 1024 * 1024, // margen sobre el límite de imagen de 10 MiB
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TOA Ordenes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ComentarioUC: comentarioUC,
		OrdenUC:      ordenUC,
		HistoriaUC:   historiaUC,
		TecnicoUC:    tecnicoUC,
		UserUC:       userUC,
		EmpresaUC:    empresaUC,
		Placeholder:  imageStore,
		Log:          log,
		JWTSecret:    cfg.JWT.Secret,
		APIToken:     cfg.Ingest.APIToken,
		BIUser:       cfg.BI.User,
		BIPassword:   cfg.BI.Password,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
