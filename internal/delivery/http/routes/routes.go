package routes

import (
	"open-inn/internal/delivery/http/handler"
	v1 "open-inn/internal/delivery/http/routes/v1"
	"open-inn/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	deps   v1.Deps
	wsh    *ws.Handler
}

func NewRegistry(health *handler.HealthHandler, deps v1.Deps, wsh *ws.Handler) *Registry {
	return &Registry{health: health, deps: deps, wsh: wsh}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.deps)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.wsh == nil {
		return
	}
	app.Get("/ws/matches", r.wsh.HandleMatchesWS)
}
