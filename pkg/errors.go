package gitsemver

import (
	"errors"
	"fmt"
)

var (
	// ErrNotARepository is returned when the working directory is not inside
	// a git repository.
	ErrNotARepository = errors.New("not a git repository")
	// ErrInvalidInitialVersion is returned when the initial offset does not
	// parse as three dot-separated integers.
	ErrInvalidInitialVersion = errors.New("failed to parse initial version")
	// ErrTagCreationFailed is matched by every *TagCreationError.
	ErrTagCreationFailed = errors.New("tag creation failed")
	// ErrWorkdirNotFound is returned by gateway constructors for a missing
	// working directory.
	ErrWorkdirNotFound = errors.New("workdir not found")
	// ErrNoTaggerIdentity is returned when no user.name/user.email is
	// configured for annotated tags.
	ErrNoTaggerIdentity = errors.New("no tagger identity configured (set user.name and user.email)")
)

// TagCreationError describes a rejected annotated tag.
type TagCreationError struct {
	Name    string // tag that could not be created
	Command string // equivalent git invocation
	Detail  string // stderr or backend message
	Err     error
}

func (e *TagCreationError) Error() string {
	msg := fmt.Sprintf("failed to create tag %q with %s", e.Name, e.Command)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Detail != "" {
		msg += ", detail: " + e.Detail
	}
	return msg
}

func (e *TagCreationError) Unwrap() error {
	return e.Err
}

// Is reports ErrTagCreationFailed as a match so callers need not know the
// concrete type.
func (e *TagCreationError) Is(target error) bool {
	return target == ErrTagCreationFailed
}
