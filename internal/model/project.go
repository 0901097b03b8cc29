package model

// Project is a unit of billable work belonging to exactly one client.
// Maps to the `projects` table.
//
// Fields:
//
//	ID       – primary key identifier of the project.
//	Name     – display name.
//	ClientID – foreign key into the clients table.
type Project struct {
	ID       uint64 // projects.id
	Name     string // projects.name
	ClientID uint64 // projects.client_id
}

// ProjectDetail carries a project together with the resolved client
// name the API exposes alongside it. Produced by JOIN queries in the
// repository layer.
type ProjectDetail struct {
	Project
	ClientName string // clients.name
}
