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

// ClientHandler serves /clients: the companies projects are billed to.
type ClientHandler struct {
	Clients ClientStore
	Audit   Auditor
}

func NewClientHandler(clients ClientStore, audit Auditor) *ClientHandler {
	if clients == nil {
		panic("handler: nil ClientStore")
	}
	return &ClientHandler{Clients: clients, Audit: audit}
}

// GetByID handles GET /clients/:id.
func (h *ClientHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cl, err := h.Clients.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, NewClientView(cl))
}

// GetPage handles GET /clients.
func (h *ClientHandler) GetPage(c echo.Context) error {
	ctx := c.Request().Context()
	p := pagination.FromQuery(c)

	total, err := h.Clients.Count(ctx)
	if err != nil {
		return err
	}
	clients, err := h.Clients.List(ctx, p.Offset(), p.Limit())
	if err != nil {
		return err
	}

	views := make([]ClientView, 0, len(clients))
	for _, cl := range clients {
		views = append(views, NewClientView(cl))
	}
	return c.JSON(http.StatusOK, pagination.New(views, p, total))
}

// Create handles POST /clients.
func (h *ClientHandler) Create(c echo.Context) error {
	var in ClientInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := in.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, problem.NewValidation(errs, c.Request().URL.Path))
	}

	cl := model.Client{Name: strings.TrimSpace(in.Name)}
	if err := h.Clients.Create(c.Request().Context(), &cl); err != nil {
		return err
	}

	audit(c, h.Audit, "client", "created", cl.ID)
	c.Response().Header().Set(echo.HeaderLocation, locationFor(c, cl.ID))
	return c.JSON(http.StatusCreated, NewClientView(cl))
}

// Update handles PUT /clients/:id.
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var in ClientInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := in.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, problem.NewValidation(errs, c.Request().URL.Path))
	}

	ctx := c.Request().Context()
	cl, err := h.Clients.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}
	if err != nil {
		return err
	}

	cl.Name = strings.TrimSpace(in.Name)
	if err := h.Clients.Update(ctx, &cl); err != nil {
		return err
	}

	audit(c, h.Audit, "client", "updated", cl.ID)
	return c.JSON(http.StatusOK, NewClientView(cl))
}

// Delete handles DELETE /clients/:id.
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.Clients.Delete(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}
	if err != nil {
		return err
	}

	audit(c, h.Audit, "client", "deleted", id)
	return c.NoContent(http.StatusOK)
}
