// Package queue carries the audit trail over RabbitMQ. Every
// successful mutation publishes an AuditEvent; a background consumer
// appends them to logs/audit.log so operators can answer "who changed
// what, when" without touching the primary database.
package queue

// AuditEvent records one successful mutation. It contains enough for
// downstream consumers to log or alert without querying the API.
type AuditEvent struct {
	Entity     string `json:"entity"`      // user, client, project, time_entry
	Action     string `json:"action"`      // created, updated, deleted
	EntityID   uint64 `json:"entity_id"`   // id of the affected row
	Actor      string `json:"actor"`       // subject name from the caller's token
	OccurredAt string `json:"occurred_at"` // RFC 3339 UTC timestamp
}
