package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrTodoRefRequired indicates no todo reference was provided.
var ErrTodoRefRequired = errors.New("todo reference required")

// ParseTodoRef parses the todo id at the front of args and returns the
// remaining args.
//
// Accepted forms: "12" and "#12". Ids must be positive.
func ParseTodoRef(args []string) (int, []string, error) {
	if len(args) == 0 {
		return 0, nil, ErrTodoRefRequired
	}

	ref := strings.TrimPrefix(args[0], "#")
	if !isAllDigits(ref) {
		return 0, nil, fmt.Errorf("invalid todo reference: %s", args[0])
	}
	id, err := strconv.Atoi(ref)
	if err != nil || id < 1 {
		return 0, nil, fmt.Errorf("invalid todo reference: %s", args[0])
	}
	return id, args[1:], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
