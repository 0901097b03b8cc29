// Package handler implements the HTTP endpoints. Handlers bind and
// validate input, call their stores, and translate outcomes into
// responses; expected conditions (missing rows, bad input) are
// answered here, anything unexpected propagates to the central error
// boundary.
package handler

import (
	"context"
	"time"

	"github.com/iliyamo/time-tracker-api/internal/model"
)

// The store interfaces name exactly what each handler consumes. The
// MySQL repositories satisfy them; tests substitute in-memory fakes.

type UserStore interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context, offset, limit int) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id uint64) error
}

type ClientStore interface {
	GetByID(ctx context.Context, id uint64) (model.Client, error)
	List(ctx context.Context, offset, limit int) ([]model.Client, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, cl *model.Client) error
	Update(ctx context.Context, cl *model.Client) error
	Delete(ctx context.Context, id uint64) error
}

type ProjectStore interface {
	GetByID(ctx context.Context, id uint64) (model.Project, error)
	GetDetailByID(ctx context.Context, id uint64) (model.ProjectDetail, error)
	ListDetail(ctx context.Context, offset, limit int) ([]model.ProjectDetail, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, p *model.Project) error
	Update(ctx context.Context, p *model.Project) error
	Delete(ctx context.Context, id uint64) error
}

type TimeEntryStore interface {
	GetDetailByID(ctx context.Context, id uint64) (model.TimeEntryDetail, error)
	ListDetail(ctx context.Context, offset, limit int) ([]model.TimeEntryDetail, error)
	ListDetailByUserMonth(ctx context.Context, userID uint64, year int, month time.Month) ([]model.TimeEntryDetail, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, e *model.TimeEntry) error
	Update(ctx context.Context, e *model.TimeEntry) error
	Delete(ctx context.Context, id uint64) error
}

// Auditor records successful mutations. Implementations must never
// fail the request that triggered the event.
type Auditor interface {
	Record(ctx context.Context, entity, action string, id uint64, actor string)
}
