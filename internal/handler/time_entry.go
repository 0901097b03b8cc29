package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/time-tracker-api/internal/model"
	"github.com/iliyamo/time-tracker-api/internal/pagination"
	"github.com/iliyamo/time-tracker-api/internal/problem"
	"github.com/iliyamo/time-tracker-api/internal/repository"
)

// TimeEntryHandler serves /time-entries. Creation resolves both the
// user and the project and freezes the user's current hour rate into
// the entry; later edits can change when and how long, never who, what
// or at which rate.
type TimeEntryHandler struct {
	Entries  TimeEntryStore
	Users    UserStore
	Projects ProjectStore
	Audit    Auditor
}

func NewTimeEntryHandler(entries TimeEntryStore, users UserStore, projects ProjectStore, audit Auditor) *TimeEntryHandler {
	if entries == nil || users == nil || projects == nil {
		panic("handler: nil time entry, user or project store")
	}
	return &TimeEntryHandler{Entries: entries, Users: users, Projects: projects, Audit: audit}
}

// GetByID handles GET /time-entries/:id.
func (h *TimeEntryHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.Entries.GetDetailByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "time entry not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, NewTimeEntryView(d))
}

// GetPage handles GET /time-entries.
func (h *TimeEntryHandler) GetPage(c echo.Context) error {
	ctx := c.Request().Context()
	p := pagination.FromQuery(c)

	total, err := h.Entries.Count(ctx)
	if err != nil {
		return err
	}
	entries, err := h.Entries.ListDetail(ctx, p.Offset(), p.Limit())
	if err != nil {
		return err
	}

	views := make([]TimeEntryView, 0, len(entries))
	for _, d := range entries {
		views = append(views, NewTimeEntryView(d))
	}
	return c.JSON(http.StatusOK, pagination.New(views, p, total))
}

// ListByUserMonth handles GET /time-entries/user/:userId/:year/:month.
// It returns every entry the user logged in that month, oldest first,
// as a plain array; a month is small enough not to page. An unknown
// user simply has no entries.
func (h *TimeEntryHandler) ListByUserMonth(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 || year > 9999 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid month"})
	}

	entries, err := h.Entries.ListDetailByUserMonth(c.Request().Context(), userID, year, time.Month(month))
	if err != nil {
		return err
	}

	views := make([]TimeEntryView, 0, len(entries))
	for _, d := range entries {
		views = append(views, NewTimeEntryView(d))
	}
	return c.JSON(http.StatusOK, views)
}

// Create handles POST /time-entries. Both referenced rows must exist;
// the user's hour rate at this moment becomes the entry's rate for
// good.
func (h *TimeEntryHandler) Create(c echo.Context) error {
	var in TimeEntryCreateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := in.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, problem.NewValidation(errs, c.Request().URL.Path))
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, in.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if err != nil {
		return err
	}
	p, err := h.Projects.GetDetailByID(ctx, in.ProjectID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
	}
	if err != nil {
		return err
	}

	day, err := parseEntryDate(in.EntryDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, problem.NewValidation(fieldErrors{"entryDate": {err.Error()}}, c.Request().URL.Path))
	}

	e := model.TimeEntry{
		UserID:      u.ID,
		ProjectID:   p.ID,
		EntryDate:   day,
		Hours:       in.Hours,
		HourRate:    u.HourRate,
		Description: in.Description,
	}
	if err := h.Entries.Create(ctx, &e); err != nil {
		return err
	}

	audit(c, h.Audit, "time_entry", "created", e.ID)
	c.Response().Header().Set(echo.HeaderLocation, locationFor(c, e.ID))
	return c.JSON(http.StatusCreated, NewTimeEntryView(model.TimeEntryDetail{
		TimeEntry:   e,
		UserName:    u.Name,
		ProjectName: p.Name,
		ClientID:    p.ClientID,
		ClientName:  p.ClientName,
	}))
}

// Update handles PUT /time-entries/:id.
func (h *TimeEntryHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var in TimeEntryUpdateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := in.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, problem.NewValidation(errs, c.Request().URL.Path))
	}

	ctx := c.Request().Context()
	d, err := h.Entries.GetDetailByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "time entry not found"})
	}
	if err != nil {
		return err
	}

	day, err := parseEntryDate(in.EntryDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, problem.NewValidation(fieldErrors{"entryDate": {err.Error()}}, c.Request().URL.Path))
	}

	d.EntryDate = day
	d.Hours = in.Hours
	d.Description = in.Description
	if err := h.Entries.Update(ctx, &d.TimeEntry); err != nil {
		return err
	}

	audit(c, h.Audit, "time_entry", "updated", d.ID)
	return c.JSON(http.StatusOK, NewTimeEntryView(d))
}

// Delete handles DELETE /time-entries/:id.
func (h *TimeEntryHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.Entries.Delete(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "time entry not found"})
	}
	if err != nil {
		return err
	}

	audit(c, h.Audit, "time_entry", "deleted", id)
	return c.NoContent(http.StatusOK)
}
