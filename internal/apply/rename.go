package apply

import (
	"errors"
	"io/fs"
	"os"
)

// guardedRename checks for newPath before renaming. A target created between
// the check and the rename is still overwritten.
func guardedRename(oldPath, newPath string) error {
	if _, err := os.Lstat(newPath); err == nil {
		return ErrTargetExists
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(oldPath, newPath)
}
