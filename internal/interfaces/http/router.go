package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/toa-ordenes-api/internal/application/auth"
	"github.com/jhoicas/toa-ordenes-api/internal/application/comentarios"
	"github.com/jhoicas/toa-ordenes-api/internal/application/historia"
	"github.com/jhoicas/toa-ordenes-api/internal/application/ordenes"
	"github.com/jhoicas/toa-ordenes-api/internal/application/tecnicos"
	"github.com/jhoicas/toa-ordenes-api/internal/application/usecase"
	"github.com/jhoicas/toa-ordenes-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ComentarioUC *comentarios.UseCase
	OrdenUC      *ordenes.UseCase
	HistoriaUC   *historia.UseCase
	TecnicoUC    *tecnicos.UseCase
	UserUC       *usecase.UserUseCase
	EmpresaUC    *usecase.EmpresaUseCase
	Placeholder  Placeholder
	Log          *logger.Logger
	JWTSecret    string
	APIToken     string
	BIUser       string
	BIPassword   string
}

// Router registra las rutas de la API. Los tres esquemas de autenticación
// (JWT, header Token, Basic Auth) comparten el prefijo /api/toa, así que el
// middleware va por ruta y no por grupo.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	comentarioHandler := NewComentarioHandler(deps.ComentarioUC, deps.Placeholder, log)
	ordenHandler := NewOrdenHandler(deps.OrdenUC)
	historiaHandler := NewHistoriaHandler(deps.HistoriaUC, log)
	tecnicoHandler := NewTecnicoHandler(deps.TecnicoUC)
	userHandler := NewUserHandler(deps.UserUC)
	empresaHandler := NewEmpresaHandler(deps.EmpresaUC)

	jwtAuth := AuthMiddleware(deps.JWTSecret)
	tokenAuth := TokenMiddleware(deps.APIToken)
	basicAuth := BasicAuthMiddleware(deps.BIUser, deps.BIPassword)

	// Rutas de usuarios humanos (JWT)
	api.Get("/toa/comentarios/:codigo", jwtAuth, comentarioHandler.GetCount)
	api.Get("/toa/comentarios/:codigo/lista", jwtAuth, comentarioHandler.List)
	api.Post("/toa/comentarios/:codigo", jwtAuth, comentarioHandler.Add)
	api.Get("/comentarios/:id/imagen", jwtAuth, comentarioHandler.GetImagen)
	api.Get("/toa/tecnicos", jwtAuth, tecnicoHandler.List)
	api.Post("/toa/tecnicos", jwtAuth, tecnicoHandler.Add)

	// Administración (usuario dev o rol admin)
	admin := api.Group("/admin", jwtAuth, RequireAdmin())
	admin.Post("/users", userHandler.Create)
	admin.Get("/users", userHandler.List)
	admin.Get("/users/inactivos", userHandler.ListInactive)
	admin.Get("/users/:id", userHandler.GetByID)
	admin.Put("/users/:id", userHandler.Update)
	admin.Delete("/users/:id", userHandler.SoftDelete)
	admin.Post("/users/:id/restore", userHandler.Restore)
	admin.Delete("/comentarios/:id", comentarioHandler.SoftDelete)
	admin.Post("/comentarios/:id/restore", comentarioHandler.Restore)
	admin.Get("/comentarios/inactivos", comentarioHandler.ListInactive)
	admin.Post("/empresas", empresaHandler.Create)
	admin.Get("/empresas", empresaHandler.List)
	admin.Get("/empresas/:id", empresaHandler.GetByID)

	// Ingesta externa (header Token estático)
	api.Post("/toa/add_ordenes_trabajo", tokenAuth, ordenHandler.BulkAdd)
	api.Post("/toa/set_data_toa_historia/:zona", tokenAuth, historiaHandler.ImportZona)
	api.Post("/toa/set_empresas_externas", tokenAuth, historiaHandler.SetEmpresa)

	// Lectura para PowerBI (Basic Auth)
	api.Get("/toa/get_empresas_externas", basicAuth, empresaHandler.ListAllBI)
	api.Get("/toa/ordenes_trabajo", basicAuth, ordenHandler.ListAll)
	api.Get("/toa/comentarios", basicAuth, comentarioHandler.ListAllBI)
	api.Get("/toa/users", basicAuth, userHandler.DumpAllBI)
	api.Get("/toa/tecnicos_supervisores", basicAuth, tecnicoHandler.ListAllBI)
	api.Get("/toa/powerbi/comentarios/imagen/:id", basicAuth, comentarioHandler.GetImagenBI)
}
