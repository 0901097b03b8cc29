package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/time-tracker-api/internal/model"
)

func projectFixture() (*clientStore, *projectStore) {
	clients := newClientStore(
		model.Client{ID: 1, Name: "Acme"},
		model.Client{ID: 2, Name: "Globex"},
	)
	projects := newProjectStore(clients,
		model.Project{ID: 1, Name: "Website", ClientID: 1},
	)
	return clients, projects
}

func TestProjectGetIncludesClientName(t *testing.T) {
	clients, projects := projectFixture()
	h := NewProjectHandler(projects, clients, nil)

	c, rec := newTestContext(t, http.MethodGet, "/api/projects/1", nil)
	setID(c, "1")
	require.NoError(t, h.GetByID(c))

	assert.JSONEq(t, `{"id":1,"name":"Website","clientId":1,"clientName":"Acme"}`, rec.Body.String())
}

func TestProjectCreateUnknownClient(t *testing.T) {
	clients, projects := projectFixture()
	h := NewProjectHandler(projects, clients, nil)

	c, rec := newTestContext(t, http.MethodPost, "/api/projects", map[string]any{
		"name": "App", "clientId": 99,
	})
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, projects.rows, 1, "nothing may be written when the client is missing")
}

func TestProjectCreateResolvesClient(t *testing.T) {
	clients, projects := projectFixture()
	h := NewProjectHandler(projects, clients, nil)

	c, rec := newTestContext(t, http.MethodPost, "/api/projects", map[string]any{
		"name": "App", "clientId": 2,
	})
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":2,"name":"App","clientId":2,"clientName":"Globex"}`, rec.Body.String())
}

func TestProjectUpdateMovesClient(t *testing.T) {
	clients, projects := projectFixture()
	h := NewProjectHandler(projects, clients, nil)

	c, rec := newTestContext(t, http.MethodPut, "/api/projects/1", map[string]any{
		"name": "Website v2", "clientId": 2,
	})
	setID(c, "1")
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Website v2","clientId":2,"clientName":"Globex"}`, rec.Body.String())
	assert.Equal(t, uint64(2), projects.rows[1].ClientID)
}

func TestProjectUpdateUnknownClientLeavesRow(t *testing.T) {
	clients, projects := projectFixture()
	h := NewProjectHandler(projects, clients, nil)

	c, rec := newTestContext(t, http.MethodPut, "/api/projects/1", map[string]any{
		"name": "Renamed", "clientId": 99,
	})
	setID(c, "1")
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Website", projects.rows[1].Name)
	assert.Equal(t, uint64(1), projects.rows[1].ClientID)
}

func TestProjectClientIDRequired(t *testing.T) {
	clients, projects := projectFixture()
	h := NewProjectHandler(projects, clients, nil)

	c, rec := newTestContext(t, http.MethodPost, "/api/projects", map[string]any{
		"name": "App", "clientId": 0,
	})
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"clientId"`)
}
