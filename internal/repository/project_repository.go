package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/time-tracker-api/internal/model"
)

type ProjectRepo struct{ DB *sql.DB }

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{DB: db} }

const projectDetailSelect = `SELECT
		p.id,
		p.name,
		p.client_id,
		c.name AS client_name
	FROM projects p
	JOIN clients c ON c.id = p.client_id`

// GetByID fetches a project by id without resolving the client name.
func (r *ProjectRepo) GetByID(ctx context.Context, id uint64) (model.Project, error) {
	var p model.Project
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, client_id FROM projects WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.Name, &p.ClientID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, ErrNotFound
	}
	return p, err
}

// GetDetailByID fetches a project together with its client name.
func (r *ProjectRepo) GetDetailByID(ctx context.Context, id uint64) (model.ProjectDetail, error) {
	var d model.ProjectDetail
	err := r.DB.QueryRowContext(ctx,
		projectDetailSelect+" WHERE p.id=? LIMIT 1",
		id).Scan(&d.ID, &d.Name, &d.ClientID, &d.ClientName)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ProjectDetail{}, ErrNotFound
	}
	return d, err
}

// ListDetail returns one page of projects with client names resolved,
// ordered by id.
func (r *ProjectRepo) ListDetail(ctx context.Context, offset, limit int) ([]model.ProjectDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		projectDetailSelect+" ORDER BY p.id LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.ProjectDetail, 0, limit)
	for rows.Next() {
		var d model.ProjectDetail
		if err := rows.Scan(&d.ID, &d.Name, &d.ClientID, &d.ClientName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Count reports the total number of projects.
func (r *ProjectRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&n)
	return n, err
}

// Create inserts the project and fills in its generated id. The
// handler verifies the client exists before calling this.
func (r *ProjectRepo) Create(ctx context.Context, p *model.Project) error {
	p.Name = strings.TrimSpace(p.Name)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO projects (name, client_id) VALUES (?,?)",
		p.Name, p.ClientID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// Update rewrites the mutable columns, name and client_id.
func (r *ProjectRepo) Update(ctx context.Context, p *model.Project) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE projects SET name=?, client_id=? WHERE id=?",
		strings.TrimSpace(p.Name), p.ClientID, p.ID)
	return err
}

// Delete removes the project.
func (r *ProjectRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM projects WHERE id=?", id)
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
