package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/time-tracker-api/internal/handler"
	"github.com/iliyamo/time-tracker-api/internal/middleware"
)

type apiHandlers struct {
	users    *handler.UserHandler
	clients  *handler.ClientHandler
	projects *handler.ProjectHandler
	entries  *handler.TimeEntryHandler
}

// registerAPI mounts the CRUD routes on an already guarded group.
// Reads are open to any valid token; every mutation additionally
// requires the admin role.
func registerAPI(g *echo.Group, h apiHandlers) {
	admin := middleware.RequireAdmin()

	// ---- Users ----
	g.GET("/users", h.users.GetPage)
	g.GET("/users/:id", h.users.GetByID)
	g.POST("/users", h.users.Create, admin)
	g.PUT("/users/:id", h.users.Update, admin)
	g.DELETE("/users/:id", h.users.Delete, admin)

	// ---- Clients ----
	g.GET("/clients", h.clients.GetPage)
	g.GET("/clients/:id", h.clients.GetByID)
	g.POST("/clients", h.clients.Create, admin)
	g.PUT("/clients/:id", h.clients.Update, admin)
	g.DELETE("/clients/:id", h.clients.Delete, admin)

	// ---- Projects ----
	g.GET("/projects", h.projects.GetPage)
	g.GET("/projects/:id", h.projects.GetByID)
	g.POST("/projects", h.projects.Create, admin)
	g.PUT("/projects/:id", h.projects.Update, admin)
	g.DELETE("/projects/:id", h.projects.Delete, admin)

	// ---- Time entries ----
	g.GET("/time-entries", h.entries.GetPage)
	g.GET("/time-entries/user/:userId/:year/:month", h.entries.ListByUserMonth)
	g.GET("/time-entries/:id", h.entries.GetByID)
	g.POST("/time-entries", h.entries.Create, admin)
	g.PUT("/time-entries/:id", h.entries.Update, admin)
	g.DELETE("/time-entries/:id", h.entries.Delete, admin)
}
