// Package service defines the backend-agnostic interface for todo operations.
package service

// DefaultUserID is the owner assigned to every todo created by this client.
const DefaultUserID = 1

// Todo represents a single task record as exchanged with the collection endpoint.
type Todo struct {
	UserID    int    `json:"userId"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Placeholder returns the neutral record used when no todo is staged for editing.
func Placeholder() Todo {
	return Todo{UserID: DefaultUserID}
}


// Patch is a record as echoed by the server, where any field may be absent.
type Patch struct {
	UserID    *int    `json:"userId"`
	ID        *int    `json:"id"`
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// PatchOf returns a Patch carrying every field of t.
func PatchOf(t Todo) Patch {
	return Patch{UserID: &t.UserID, ID: &t.ID, Title: &t.Title, Completed: &t.Completed}
}

// Apply overlays the fields present in p onto t.
func (p Patch) Apply(t Todo) Todo {
	if p.UserID != nil {
		t.UserID = *p.UserID
	}
	if p.ID != nil {
		t.ID = *p.ID
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}
