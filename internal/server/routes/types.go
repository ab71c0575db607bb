package routes

import (
	"github.com/proman-app/proman/internal/api/handlers"
	"github.com/proman-app/proman/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Auth     *handlers.AuthHandler
	Admin    *handlers.AdminHandler
	Project  *handlers.ProjectHandler
	Task     *handlers.TaskHandler
	Profile  *handlers.ProfileHandler
	Landing  *handlers.LandingHandler
	Health   *handlers.HealthHandler
	Realtime *handlers.RealtimeHandler
}

// Middleware contains all the middleware
type Middleware struct {
	Auth *middleware.AuthMiddleware
	Role *middleware.RoleMiddleware
}
