package commands

import (
	"reflect"
	"testing"
)

func TestParseTodoRef(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantID   int
		wantRest []string
		wantErr  string
	}{
		{name: "plain id", args: []string{"12"}, wantID: 12, wantRest: []string{}},
		{name: "hash id", args: []string{"#205"}, wantID: 205, wantRest: []string{}},
		{name: "with rest", args: []string{"3", "new", "title"}, wantID: 3, wantRest: []string{"new", "title"}},
		{name: "missing", args: nil, wantErr: "todo reference required"},
		{name: "zero", args: []string{"0"}, wantErr: "invalid todo reference: 0"},
		{name: "letters", args: []string{"a1"}, wantErr: "invalid todo reference: a1"},
		{name: "bare hash", args: []string{"#"}, wantErr: "invalid todo reference: #"},
		{name: "negative", args: []string{"-4"}, wantErr: "invalid todo reference: -4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, rest, err := ParseTodoRef(tt.args)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.wantID {
				t.Errorf("expected id %d, got %d", tt.wantID, id)
			}
			if !reflect.DeepEqual(rest, tt.wantRest) {
				t.Errorf("expected rest %v, got %v", tt.wantRest, rest)
			}
		})
	}
}
