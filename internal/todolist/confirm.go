package todolist

import "context"

// Confirmation texts shown before a deletion.
const (
	DeleteHeader  = "Delete Confirmation"
	DeleteMessage = "Are you sure you want to delete this todo?"
)

// Prompt is a yes/no question put to the user.
type Prompt struct {
	Header  string
	Message string
	ID      int
}

// Confirmer asks the user to accept or reject a prompt.
// Confirm may block; it is called off the caller's goroutine.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, p Prompt) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, p Prompt) bool {
	return f(ctx, p)
}

var (
	// AcceptAll accepts every prompt.
	AcceptAll Confirmer = ConfirmFunc(func(context.Context, Prompt) bool { return true })

	// RejectAll rejects every prompt.
	RejectAll Confirmer = ConfirmFunc(func(context.Context, Prompt) bool { return false })
)

func deletePrompt(id int) Prompt {
	return Prompt{Header: DeleteHeader, Message: DeleteMessage, ID: id}
}
