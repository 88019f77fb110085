package app

import (
	"fmt"
	"strings"

	"open-inn/internal/config"
	"open-inn/internal/delivery/http/handler"
	"open-inn/internal/delivery/http/middleware"
	"open-inn/internal/delivery/http/routes"
	v1 "open-inn/internal/delivery/http/routes/v1"
	"open-inn/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, c *Container) (*App, func() error, error) {
	app := New(cfg, c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	deps := v1.Deps{
		AuthMw:      middleware.NewAuthMiddleware(c.JWT),
		Auth:        handler.NewAuthHandler(c.AuthUC),
		Profile:     handler.NewProfileHandler(c.ProfileUC),
		Project:     handler.NewProjectHandler(c.ProjectUC),
		Matchmaking: handler.NewMatchmakingHandler(c.MatchmakingUC),
	}

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB),
		deps,
		ws.NewHandler(c.Hub, c.Logger),
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
