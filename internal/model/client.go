package model

// Client is a customer that projects are billed to. Maps to the
// `clients` table.
type Client struct {
	ID   uint64 // clients.id
	Name string // clients.name
}
