package notes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gaabane252/Notes-app/internal/stringsx"
)

// ErrNotFound is returned when no note with the requested id exists.
var ErrNotFound = errors.New("note not found")

// ValidationError reports which required fields were empty after
// trimming. Surfaced to HTTP clients as 400.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, " and ") + " required"
}

// StorageError wraps a read or write failure of the backing store.
// Surfaced to HTTP clients as 500.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// validateFields trims title and content and returns a ValidationError
// naming every field that ends up empty.
func validateFields(title, content string) (string, string, error) {
	var missing []string
	if stringsx.IsEmpty(title) {
		missing = append(missing, "title")
	}
	if stringsx.IsEmpty(content) {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return "", "", &ValidationError{Fields: missing}
	}
	return strings.TrimSpace(title), strings.TrimSpace(content), nil
}
