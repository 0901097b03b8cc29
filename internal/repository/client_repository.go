package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/time-tracker-api/internal/model"
)

type ClientRepo struct{ DB *sql.DB }

func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{DB: db} }

// GetByID fetches a client by id.
func (r *ClientRepo) GetByID(ctx context.Context, id uint64) (model.Client, error) {
	var c model.Client
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM clients WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Client{}, ErrNotFound
	}
	return c, err
}

// List returns one page of clients ordered by id.
func (r *ClientRepo) List(ctx context.Context, offset, limit int) ([]model.Client, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name FROM clients ORDER BY id LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Client, 0, limit)
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Count reports the total number of clients.
func (r *ClientRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM clients").Scan(&n)
	return n, err
}

// Create inserts the client and fills in its generated id.
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	c.Name = strings.TrimSpace(c.Name)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO clients (name) VALUES (?)", c.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// Update rewrites the only mutable column, name.
func (r *ClientRepo) Update(ctx context.Context, c *model.Client) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE clients SET name=? WHERE id=?",
		strings.TrimSpace(c.Name), c.ID)
	return err
}

// Delete removes the client.
func (r *ClientRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM clients WHERE id=?", id)
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
