package handler

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Bounds for incoming fields.
const (
	nameMaxLen        = 100
	descriptionMaxLen = 10000
	hourRateMax       = 1000
	hoursMin          = 1
	hoursMax          = 24
)

// Entry dates must fall inside a sane window; anything outside it is a
// typo, not time tracking.
var (
	entryDateMin = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	entryDateMax = time.Date(2100, 12, 31, 0, 0, 0, 0, time.UTC)
)

// fieldErrors collects validation messages keyed by JSON field name.
type fieldErrors map[string][]string

func (fe fieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func validateName(fe fieldErrors, name string) {
	n := strings.TrimSpace(name)
	switch {
	case n == "":
		fe.add("name", "must not be empty")
	case utf8.RuneCountInString(n) > nameMaxLen:
		fe.add("name", "must be at most 100 characters")
	}
}

// parseEntryDate parses a wire date and checks the accepted window.
func parseEntryDate(s string) (time.Time, error) {
	d, err := time.Parse(entryDateLayout, s)
	if err != nil {
		return time.Time{}, errors.New("must be a date in YYYY-MM-DD form")
	}
	if d.Before(entryDateMin) || d.After(entryDateMax) {
		return time.Time{}, errors.New("must fall between 2000-01-01 and 2100-12-31")
	}
	return d, nil
}

func validateEntryFields(fe fieldErrors, date string, hours int, description string) {
	if _, err := parseEntryDate(date); err != nil {
		fe.add("entryDate", err.Error())
	}
	if hours < hoursMin || hours > hoursMax {
		fe.add("hours", "must be between 1 and 24")
	}
	switch {
	case description == "":
		fe.add("description", "must not be empty")
	case utf8.RuneCountInString(description) > descriptionMaxLen:
		fe.add("description", "must be at most 10000 characters")
	}
}

// UserInput carries the mutable fields of a user. The same shape
// serves create and update; both fields are always written.
type UserInput struct {
	Name     string  `json:"name"`
	HourRate float64 `json:"hourRate"`
}

func (in UserInput) Validate() fieldErrors {
	fe := fieldErrors{}
	validateName(fe, in.Name)
	if in.HourRate <= 0 || in.HourRate >= hourRateMax {
		fe.add("hourRate", "must be greater than 0 and less than 1000")
	}
	return fe
}

// ClientInput carries the mutable fields of a client.
type ClientInput struct {
	Name string `json:"name"`
}

func (in ClientInput) Validate() fieldErrors {
	fe := fieldErrors{}
	validateName(fe, in.Name)
	return fe
}

// ProjectInput carries the mutable fields of a project.
type ProjectInput struct {
	Name     string `json:"name"`
	ClientID uint64 `json:"clientId"`
}

func (in ProjectInput) Validate() fieldErrors {
	fe := fieldErrors{}
	validateName(fe, in.Name)
	if in.ClientID == 0 {
		fe.add("clientId", "must reference a client")
	}
	return fe
}

// TimeEntryCreateInput names the user and project a new entry belongs
// to. Neither reference can be changed afterwards.
type TimeEntryCreateInput struct {
	UserID      uint64 `json:"userId"`
	ProjectID   uint64 `json:"projectId"`
	EntryDate   string `json:"entryDate"`
	Hours       int    `json:"hours"`
	Description string `json:"description"`
}

func (in TimeEntryCreateInput) Validate() fieldErrors {
	fe := fieldErrors{}
	if in.UserID == 0 {
		fe.add("userId", "must reference a user")
	}
	if in.ProjectID == 0 {
		fe.add("projectId", "must reference a project")
	}
	validateEntryFields(fe, in.EntryDate, in.Hours, in.Description)
	return fe
}

// TimeEntryUpdateInput carries the fields an update may touch. User,
// project and the captured hour rate are deliberately absent.
type TimeEntryUpdateInput struct {
	EntryDate   string `json:"entryDate"`
	Hours       int    `json:"hours"`
	Description string `json:"description"`
}

func (in TimeEntryUpdateInput) Validate() fieldErrors {
	fe := fieldErrors{}
	validateEntryFields(fe, in.EntryDate, in.Hours, in.Description)
	return fe
}
