package apply

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFiles reports that discovery produced no candidate files.
	ErrNoFiles = errors.New("no files to rename")
	// ErrNoActions reports that no rename rules were given.
	ErrNoActions = errors.New("no rename rules given")
	// ErrTargetExists reports that a rename target appeared after the plan was built.
	ErrTargetExists = errors.New("target already exists")
)

// RenameError reports a failed filesystem rename. Renames earlier in the
// batch have already happened.
type RenameError struct {
	Original string
	Proposed string
	Err      error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("rename %q -> %q: %v", e.Original, e.Proposed, e.Err)
}

func (e *RenameError) Unwrap() error {
	return e.Err
}
