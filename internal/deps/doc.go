// Package deps checks that the external binaries renamer shells out to are
// installed.
package deps
