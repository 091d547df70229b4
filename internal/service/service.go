// Package service defines the backend-agnostic interface for todo operations.
package service

import "context"

// Gateway defines the four operations against the todo collection.
// All HTTP calls go through this interface.
// The view-model never talks to net/http directly.
type Gateway interface {
	// List returns the full collection in server order.
	List(ctx context.Context) ([]Todo, error)

	// Create posts a new todo owned by DefaultUserID.
	// The returned record carries the server-assigned id.
	Create(ctx context.Context, title string, completed bool) (Todo, error)

	// Update replaces the record stored under todo.ID and returns the fields
	// the server echoed back.
	Update(ctx context.Context, todo Todo) (Patch, error)

	// Delete removes the record with the given id.
	Delete(ctx context.Context, id int) error
}

