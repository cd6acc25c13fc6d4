// Package types holds the value types shared between the pollkit
// packages and its consumers.
package types

// Todo is the sample record fetched by the demo binary and the fetch
// tests. It is a plain value - it has no identity beyond its fields
// and is never mutated after being decoded.
type Todo struct {
	OwnerID   int    `json:"ownerId"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}
