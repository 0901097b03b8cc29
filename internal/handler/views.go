package handler

import (
	"github.com/iliyamo/time-tracker-api/internal/model"
)

// entryDateLayout is the wire format for entry dates.
const entryDateLayout = "2006-01-02"

// UserView is the wire shape of a user.
type UserView struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	HourRate float64 `json:"hourRate"`
}

func NewUserView(u model.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, HourRate: u.HourRate}
}

// ClientView is the wire shape of a client.
type ClientView struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func NewClientView(cl model.Client) ClientView {
	return ClientView{ID: cl.ID, Name: cl.Name}
}

// ProjectView is the wire shape of a project, client name included so
// list screens need no second round trip.
type ProjectView struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	ClientID   uint64 `json:"clientId"`
	ClientName string `json:"clientName"`
}

func NewProjectView(d model.ProjectDetail) ProjectView {
	return ProjectView{
		ID:         d.ID,
		Name:       d.Name,
		ClientID:   d.ClientID,
		ClientName: d.ClientName,
	}
}

// TimeEntryView is the wire shape of a time entry together with the
// names of the user, project and client it belongs to.
type TimeEntryView struct {
	ID          uint64  `json:"id"`
	UserID      uint64  `json:"userId"`
	UserName    string  `json:"userName"`
	ProjectID   uint64  `json:"projectId"`
	ProjectName string  `json:"projectName"`
	ClientID    uint64  `json:"clientId"`
	ClientName  string  `json:"clientName"`
	EntryDate   string  `json:"entryDate"`
	Hours       int     `json:"hours"`
	HourRate    float64 `json:"hourRate"`
	Description string  `json:"description"`
}

func NewTimeEntryView(d model.TimeEntryDetail) TimeEntryView {
	return TimeEntryView{
		ID:          d.ID,
		UserID:      d.UserID,
		UserName:    d.UserName,
		ProjectID:   d.ProjectID,
		ProjectName: d.ProjectName,
		ClientID:    d.ClientID,
		ClientName:  d.ClientName,
		EntryDate:   d.EntryDate.Format(entryDateLayout),
		Hours:       d.Hours,
		HourRate:    d.HourRate,
		Description: d.Description,
	}
}
