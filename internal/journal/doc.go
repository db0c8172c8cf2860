// Package journal persists applied renames so they can be listed and undone.
//
// The journal is a SQLite database holding one batch per `--do` run and one
// row per completed rename, stored with absolute paths. A flock lock file
// next to the database keeps two runs from applying renames at the same time.
package journal
