// Package discover lists the files a rename run operates on.
//
// Roots are files or directories given on the command line. Directories are
// read one level deep unless recursion is requested. Regular files and
// symlinks are candidates; permission problems and missing roots are logged
// and skipped so one bad argument does not abort the run.
package discover
