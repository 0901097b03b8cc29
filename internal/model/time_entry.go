package model

import "time"

// TimeEntry records hours a user worked on a project on a given day.
// Maps to the `time_entries` table.
//
// HourRate is a snapshot of the user's rate taken when the entry was
// created. Updates to an entry may change the date, hours and
// description but never the user, the project or the captured rate.
//
// Fields:
//
//	ID          – primary key identifier of the entry.
//	UserID      – foreign key into the users table.
//	ProjectID   – foreign key into the projects table.
//	EntryDate   – calendar day the work happened (DATE column).
//	Hours       – whole hours worked, 1 through 24.
//	HourRate    – rate captured from the user at creation time.
//	Description – free-form note about the work.
type TimeEntry struct {
	ID          uint64    // time_entries.id
	UserID      uint64    // time_entries.user_id
	ProjectID   uint64    // time_entries.project_id
	EntryDate   time.Time // time_entries.entry_date
	Hours       int       // time_entries.hours
	HourRate    float64   // time_entries.hour_rate
	Description string    // time_entries.description
}

// TimeEntryDetail carries an entry together with the resolved user,
// project and client names the API exposes alongside it. Produced by
// JOIN queries in the repository layer.
type TimeEntryDetail struct {
	TimeEntry
	UserName    string // users.name
	ProjectName string // projects.name
	ClientID    uint64 // projects.client_id
	ClientName  string // clients.name
}
