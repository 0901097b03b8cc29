package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/time-tracker-api/internal/model"
	"github.com/iliyamo/time-tracker-api/internal/pagination"
	"github.com/iliyamo/time-tracker-api/internal/problem"
	"github.com/iliyamo/time-tracker-api/internal/repository"
)

// ProjectHandler serves /projects. Every project belongs to a client,
// so writes resolve the client before touching the project.
type ProjectHandler struct {
	Projects ProjectStore
	Clients  ClientStore
	Audit    Auditor
}

func NewProjectHandler(projects ProjectStore, clients ClientStore, audit Auditor) *ProjectHandler {
	if projects == nil || clients == nil {
		panic("handler: nil project or client store")
	}
	return &ProjectHandler{Projects: projects, Clients: clients, Audit: audit}
}

// GetByID handles GET /projects/:id.
func (h *ProjectHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.Projects.GetDetailByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, NewProjectView(d))
}

// GetPage handles GET /projects.
func (h *ProjectHandler) GetPage(c echo.Context) error {
	ctx := c.Request().Context()
	p := pagination.FromQuery(c)

	total, err := h.Projects.Count(ctx)
	if err != nil {
		return err
	}
	projects, err := h.Projects.ListDetail(ctx, p.Offset(), p.Limit())
	if err != nil {
		return err
	}

	views := make([]ProjectView, 0, len(projects))
	for _, d := range projects {
		views = append(views, NewProjectView(d))
	}
	return c.JSON(http.StatusOK, pagination.New(views, p, total))
}

// Create handles POST /projects. The referenced client must exist.
func (h *ProjectHandler) Create(c echo.Context) error {
	var in ProjectInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := in.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, problem.NewValidation(errs, c.Request().URL.Path))
	}

	ctx := c.Request().Context()
	cl, err := h.Clients.GetByID(ctx, in.ClientID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}
	if err != nil {
		return err
	}

	p := model.Project{Name: strings.TrimSpace(in.Name), ClientID: cl.ID}
	if err := h.Projects.Create(ctx, &p); err != nil {
		return err
	}

	audit(c, h.Audit, "project", "created", p.ID)
	c.Response().Header().Set(echo.HeaderLocation, locationFor(c, p.ID))
	return c.JSON(http.StatusCreated, NewProjectView(model.ProjectDetail{Project: p, ClientName: cl.Name}))
}

// Update handles PUT /projects/:id. Moving a project to another client
// is allowed; the target client must exist.
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var in ProjectInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := in.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, problem.NewValidation(errs, c.Request().URL.Path))
	}

	ctx := c.Request().Context()
	p, err := h.Projects.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
	}
	if err != nil {
		return err
	}
	cl, err := h.Clients.GetByID(ctx, in.ClientID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}
	if err != nil {
		return err
	}

	p.Name = strings.TrimSpace(in.Name)
	p.ClientID = cl.ID
	if err := h.Projects.Update(ctx, &p); err != nil {
		return err
	}

	audit(c, h.Audit, "project", "updated", p.ID)
	return c.JSON(http.StatusOK, NewProjectView(model.ProjectDetail{Project: p, ClientName: cl.Name}))
}

// Delete handles DELETE /projects/:id.
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.Projects.Delete(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
	}
	if err != nil {
		return err
	}

	audit(c, h.Audit, "project", "deleted", id)
	return c.NoContent(http.StatusOK)
}
