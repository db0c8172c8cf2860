//go:build !linux

package apply

func renameNoReplace(oldPath, newPath string) error {
	return guardedRename(oldPath, newPath)
}
