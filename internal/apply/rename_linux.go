//go:build linux

package apply

import (
	"errors"

	"golang.org/x/sys/unix"
)

// renameNoReplace renames oldPath to newPath atomically, failing when newPath
// exists. Filesystems without RENAME_NOREPLACE fall back to a guarded rename.
func renameNoReplace(oldPath, newPath string) error {
	err := unix.Renameat2(unix.AT_FDCWD, oldPath, unix.AT_FDCWD, newPath, unix.RENAME_NOREPLACE)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.EEXIST):
		return ErrTargetExists
	case errors.Is(err, unix.EINVAL), errors.Is(err, unix.ENOSYS), errors.Is(err, unix.ENOTSUP):
		return guardedRename(oldPath, newPath)
	default:
		return err
	}
}
