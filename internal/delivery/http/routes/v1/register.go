package v1

import (
	"open-inn/internal/delivery/http/handler"
	"open-inn/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	AuthMw *middleware.AuthMiddleware

	Auth        *handler.AuthHandler
	Profile     *handler.ProfileHandler
	Project     *handler.ProjectHandler
	Matchmaking *handler.MatchmakingHandler
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	authGroup := r.Group("/auth")
	d.Auth.RegisterRoutes(authGroup)

	protected := r.Group("", d.AuthMw.Middleware())

	profileGroup := protected.Group("/profile")
	d.Profile.RegisterRoutes(profileGroup)

	projectsGroup := protected.Group("/projects")
	d.Project.RegisterRoutes(projectsGroup)

	matchmakingGroup := protected.Group("/matchmaking")
	d.Matchmaking.RegisterRoutes(matchmakingGroup)
}
