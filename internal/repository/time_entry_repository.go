package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/time-tracker-api/internal/model"
)

type TimeEntryRepo struct{ DB *sql.DB }

func NewTimeEntryRepo(db *sql.DB) *TimeEntryRepo { return &TimeEntryRepo{DB: db} }

const timeEntryDetailSelect = `SELECT
		e.id,
		e.user_id,
		u.name AS user_name,
		e.project_id,
		p.name AS project_name,
		p.client_id,
		c.name AS client_name,
		e.entry_date,
		e.hours,
		e.hour_rate,
		e.description
	FROM time_entries e
	JOIN users u    ON u.id = e.user_id
	JOIN projects p ON p.id = e.project_id
	JOIN clients c  ON c.id = p.client_id`

func scanTimeEntryDetail(row interface{ Scan(...any) error }) (model.TimeEntryDetail, error) {
	var d model.TimeEntryDetail
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.UserName,
		&d.ProjectID,
		&d.ProjectName,
		&d.ClientID,
		&d.ClientName,
		&d.EntryDate,
		&d.Hours,
		&d.HourRate,
		&d.Description,
	)
	return d, err
}

// GetDetailByID fetches an entry with its user, project and client
// names resolved.
func (r *TimeEntryRepo) GetDetailByID(ctx context.Context, id uint64) (model.TimeEntryDetail, error) {
	d, err := scanTimeEntryDetail(r.DB.QueryRowContext(ctx,
		timeEntryDetailSelect+" WHERE e.id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.TimeEntryDetail{}, ErrNotFound
	}
	return d, err
}

// ListDetail returns one page of entries with names resolved, ordered
// by id.
func (r *TimeEntryRepo) ListDetail(ctx context.Context, offset, limit int) ([]model.TimeEntryDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		timeEntryDetailSelect+" ORDER BY e.id LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.TimeEntryDetail, 0, limit)
	for rows.Next() {
		d, err := scanTimeEntryDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListDetailByUserMonth returns every entry one user logged inside a
// calendar month, oldest first. Not paginated.
func (r *TimeEntryRepo) ListDetailByUserMonth(ctx context.Context, userID uint64, year int, month time.Month) ([]model.TimeEntryDetail, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := r.DB.QueryContext(ctx,
		timeEntryDetailSelect+` WHERE e.user_id=? AND e.entry_date >= ? AND e.entry_date < ?
	ORDER BY e.entry_date ASC, e.id ASC`,
		userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TimeEntryDetail{}
	for rows.Next() {
		d, err := scanTimeEntryDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Count reports the total number of entries.
func (r *TimeEntryRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM time_entries").Scan(&n)
	return n, err
}

// Create inserts the entry and fills in its generated id. HourRate
// must already hold the snapshot taken from the owning user; the
// handler captures it before calling this.
func (r *TimeEntryRepo) Create(ctx context.Context, e *model.TimeEntry) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO time_entries (user_id, project_id, entry_date, hours, hour_rate, description) VALUES (?,?,?,?,?,?)",
		e.UserID, e.ProjectID, e.EntryDate, e.Hours, e.HourRate, e.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// Update rewrites the mutable columns only. user_id, project_id and
// hour_rate are excluded on purpose: links and the captured rate are
// fixed for the lifetime of an entry.
func (r *TimeEntryRepo) Update(ctx context.Context, e *model.TimeEntry) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE time_entries SET entry_date=?, hours=?, description=? WHERE id=?",
		e.EntryDate, e.Hours, e.Description, e.ID)
	return err
}

// Delete removes the entry.
func (r *TimeEntryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM time_entries WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
