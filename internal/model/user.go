package model

// User represents a tracked worker as stored in the `users` table.
// Each field corresponds to a column in the database. The json tags
// are omitted here because these structs are used internally by the
// repository layer; handlers define separate response types with
// appropriate JSON tags.
//
// HourRate is the amount billed for one hour of this user's work.
// Time entries copy the value at creation time, so changing it here
// never rewrites rates already captured on existing entries.
//
// Fields:
//
//	ID       – primary key identifier of the user.
//	Name     – display name.
//	HourRate – current hourly rate (DECIMAL(10,2) in MySQL).
type User struct {
	ID       uint64  // users.id
	Name     string  // users.name
	HourRate float64 // users.hour_rate
}
