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

// UserHandler serves /users: the people whose hours are tracked.
type UserHandler struct {
	Users UserStore
	Audit Auditor
}

func NewUserHandler(users UserStore, audit Auditor) *UserHandler {
	if users == nil {
		panic("handler: nil UserStore")
	}
	return &UserHandler{Users: users, Audit: audit}
}

// GetByID handles GET /users/:id.
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, NewUserView(u))
}

// GetPage handles GET /users.
func (h *UserHandler) GetPage(c echo.Context) error {
	ctx := c.Request().Context()
	p := pagination.FromQuery(c)

	total, err := h.Users.Count(ctx)
	if err != nil {
		return err
	}
	users, err := h.Users.List(ctx, p.Offset(), p.Limit())
	if err != nil {
		return err
	}

	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, NewUserView(u))
	}
	return c.JSON(http.StatusOK, pagination.New(views, p, total))
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context) error {
	var in UserInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := in.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, problem.NewValidation(errs, c.Request().URL.Path))
	}

	u := model.User{Name: strings.TrimSpace(in.Name), HourRate: in.HourRate}
	if err := h.Users.Create(c.Request().Context(), &u); err != nil {
		return err
	}

	audit(c, h.Audit, "user", "created", u.ID)
	c.Response().Header().Set(echo.HeaderLocation, locationFor(c, u.ID))
	return c.JSON(http.StatusCreated, NewUserView(u))
}

// Update handles PUT /users/:id. Only name and hourRate are written;
// a rate change affects future time entries only.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var in UserInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := in.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, problem.NewValidation(errs, c.Request().URL.Path))
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if err != nil {
		return err
	}

	u.Name = strings.TrimSpace(in.Name)
	u.HourRate = in.HourRate
	if err := h.Users.Update(ctx, &u); err != nil {
		return err
	}

	audit(c, h.Audit, "user", "updated", u.ID)
	return c.JSON(http.StatusOK, NewUserView(u))
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.Users.Delete(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if err != nil {
		return err
	}

	audit(c, h.Audit, "user", "deleted", id)
	return c.NoContent(http.StatusOK)
}
