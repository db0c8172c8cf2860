// Package textutil sanitizes text that ends up inside file names.
//
// Keyword values come from container metadata (titles, tags) and may carry
// path separators or characters that common filesystems reject. Run them
// through SanitizeFileName before splicing them into a proposed name.
package textutil
