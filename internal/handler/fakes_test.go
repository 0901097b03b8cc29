package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/time-tracker-api/internal/model"
	"github.com/iliyamo/time-tracker-api/internal/repository"
)

// In-memory stores standing in for the MySQL repositories. They mirror
// the repository contract: ErrNotFound on missing reads and deletes,
// updates write only the columns the SQL allow-lists name, and an
// update of a missing row affects nothing.

type userStore struct {
	rows   map[uint64]model.User
	nextID uint64
	err    error
}

func newUserStore(seed ...model.User) *userStore {
	s := &userStore{rows: map[uint64]model.User{}}
	for _, u := range seed {
		s.rows[u.ID] = u
		if u.ID > s.nextID {
			s.nextID = u.ID
		}
	}
	return s
}

func (s *userStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	if s.err != nil {
		return model.User{}, s.err
	}
	u, ok := s.rows[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *userStore) List(_ context.Context, offset, limit int) ([]model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]model.User, 0, len(s.rows))
	for _, u := range s.rows {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, offset, limit), nil
}

func (s *userStore) Count(context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.rows)), nil
}

func (s *userStore) Create(_ context.Context, u *model.User) error {
	if s.err != nil {
		return s.err
	}
	s.nextID++
	u.ID = s.nextID
	s.rows[u.ID] = *u
	return nil
}

func (s *userStore) Update(_ context.Context, u *model.User) error {
	if s.err != nil {
		return s.err
	}
	row, ok := s.rows[u.ID]
	if !ok {
		return nil
	}
	row.Name = u.Name
	row.HourRate = u.HourRate
	s.rows[u.ID] = row
	return nil
}

func (s *userStore) Delete(_ context.Context, id uint64) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

type clientStore struct {
	rows   map[uint64]model.Client
	nextID uint64
	err    error
}

func newClientStore(seed ...model.Client) *clientStore {
	s := &clientStore{rows: map[uint64]model.Client{}}
	for _, cl := range seed {
		s.rows[cl.ID] = cl
		if cl.ID > s.nextID {
			s.nextID = cl.ID
		}
	}
	return s
}

func (s *clientStore) GetByID(_ context.Context, id uint64) (model.Client, error) {
	if s.err != nil {
		return model.Client{}, s.err
	}
	cl, ok := s.rows[id]
	if !ok {
		return model.Client{}, repository.ErrNotFound
	}
	return cl, nil
}

func (s *clientStore) List(_ context.Context, offset, limit int) ([]model.Client, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]model.Client, 0, len(s.rows))
	for _, cl := range s.rows {
		out = append(out, cl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, offset, limit), nil
}

func (s *clientStore) Count(context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.rows)), nil
}

func (s *clientStore) Create(_ context.Context, cl *model.Client) error {
	if s.err != nil {
		return s.err
	}
	s.nextID++
	cl.ID = s.nextID
	s.rows[cl.ID] = *cl
	return nil
}

func (s *clientStore) Update(_ context.Context, cl *model.Client) error {
	if s.err != nil {
		return s.err
	}
	row, ok := s.rows[cl.ID]
	if !ok {
		return nil
	}
	row.Name = cl.Name
	s.rows[cl.ID] = row
	return nil
}

func (s *clientStore) Delete(_ context.Context, id uint64) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

type projectStore struct {
	rows    map[uint64]model.Project
	clients *clientStore
	nextID  uint64
	err     error
}

func newProjectStore(clients *clientStore, seed ...model.Project) *projectStore {
	s := &projectStore{rows: map[uint64]model.Project{}, clients: clients}
	for _, p := range seed {
		s.rows[p.ID] = p
		if p.ID > s.nextID {
			s.nextID = p.ID
		}
	}
	return s
}

func (s *projectStore) detail(p model.Project) model.ProjectDetail {
	d := model.ProjectDetail{Project: p}
	if s.clients != nil {
		if cl, ok := s.clients.rows[p.ClientID]; ok {
			d.ClientName = cl.Name
		}
	}
	return d
}

func (s *projectStore) GetByID(_ context.Context, id uint64) (model.Project, error) {
	if s.err != nil {
		return model.Project{}, s.err
	}
	p, ok := s.rows[id]
	if !ok {
		return model.Project{}, repository.ErrNotFound
	}
	return p, nil
}

func (s *projectStore) GetDetailByID(ctx context.Context, id uint64) (model.ProjectDetail, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return model.ProjectDetail{}, err
	}
	return s.detail(p), nil
}

func (s *projectStore) ListDetail(_ context.Context, offset, limit int) ([]model.ProjectDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]model.ProjectDetail, 0, len(s.rows))
	for _, p := range s.rows {
		out = append(out, s.detail(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, offset, limit), nil
}

func (s *projectStore) Count(context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.rows)), nil
}

func (s *projectStore) Create(_ context.Context, p *model.Project) error {
	if s.err != nil {
		return s.err
	}
	s.nextID++
	p.ID = s.nextID
	s.rows[p.ID] = *p
	return nil
}

func (s *projectStore) Update(_ context.Context, p *model.Project) error {
	if s.err != nil {
		return s.err
	}
	row, ok := s.rows[p.ID]
	if !ok {
		return nil
	}
	row.Name = p.Name
	row.ClientID = p.ClientID
	s.rows[p.ID] = row
	return nil
}

func (s *projectStore) Delete(_ context.Context, id uint64) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

type timeEntryStore struct {
	rows     map[uint64]model.TimeEntry
	users    *userStore
	projects *projectStore
	nextID   uint64
	err      error
}

func newTimeEntryStore(users *userStore, projects *projectStore, seed ...model.TimeEntry) *timeEntryStore {
	s := &timeEntryStore{rows: map[uint64]model.TimeEntry{}, users: users, projects: projects}
	for _, e := range seed {
		s.rows[e.ID] = e
		if e.ID > s.nextID {
			s.nextID = e.ID
		}
	}
	return s
}

func (s *timeEntryStore) detail(e model.TimeEntry) model.TimeEntryDetail {
	d := model.TimeEntryDetail{TimeEntry: e}
	if s.users != nil {
		if u, ok := s.users.rows[e.UserID]; ok {
			d.UserName = u.Name
		}
	}
	if s.projects != nil {
		if p, ok := s.projects.rows[e.ProjectID]; ok {
			d.ProjectName = p.Name
			d.ClientID = p.ClientID
			if s.projects.clients != nil {
				if cl, ok := s.projects.clients.rows[p.ClientID]; ok {
					d.ClientName = cl.Name
				}
			}
		}
	}
	return d
}

func (s *timeEntryStore) GetDetailByID(_ context.Context, id uint64) (model.TimeEntryDetail, error) {
	if s.err != nil {
		return model.TimeEntryDetail{}, s.err
	}
	e, ok := s.rows[id]
	if !ok {
		return model.TimeEntryDetail{}, repository.ErrNotFound
	}
	return s.detail(e), nil
}

func (s *timeEntryStore) ListDetail(_ context.Context, offset, limit int) ([]model.TimeEntryDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]model.TimeEntryDetail, 0, len(s.rows))
	for _, e := range s.rows {
		out = append(out, s.detail(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, offset, limit), nil
}

func (s *timeEntryStore) ListDetailByUserMonth(_ context.Context, userID uint64, year int, month time.Month) ([]model.TimeEntryDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	out := make([]model.TimeEntryDetail, 0)
	for _, e := range s.rows {
		if e.UserID != userID || e.EntryDate.Before(start) || !e.EntryDate.Before(end) {
			continue
		}
		out = append(out, s.detail(e))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EntryDate.Equal(out[j].EntryDate) {
			return out[i].EntryDate.Before(out[j].EntryDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *timeEntryStore) Count(context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.rows)), nil
}

func (s *timeEntryStore) Create(_ context.Context, e *model.TimeEntry) error {
	if s.err != nil {
		return s.err
	}
	s.nextID++
	e.ID = s.nextID
	s.rows[e.ID] = *e
	return nil
}

func (s *timeEntryStore) Update(_ context.Context, e *model.TimeEntry) error {
	if s.err != nil {
		return s.err
	}
	row, ok := s.rows[e.ID]
	if !ok {
		return nil
	}
	row.EntryDate = e.EntryDate
	row.Hours = e.Hours
	row.Description = e.Description
	s.rows[e.ID] = row
	return nil
}

func (s *timeEntryStore) Delete(_ context.Context, id uint64) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func window[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

// auditRecorder captures audit calls for assertions.
type auditRecorder struct {
	events []string
}

func (r *auditRecorder) Record(_ context.Context, entity, action string, id uint64, actor string) {
	r.events = append(r.events, fmt.Sprintf("%s %s %d by %s", entity, action, id, actor))
}

// newTestContext builds an echo context around an optional JSON body.
func newTestContext(t *testing.T, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

// setID registers the :id route parameter the way the router would.
func setID(c echo.Context, id string) {
	c.SetParamNames("id")
	c.SetParamValues(id)
}
