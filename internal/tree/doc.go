// Package tree moves and walks directory trees on the local filesystem.
// Relocate moves a nested directory to a new nested path even when the two
// paths overlap, and Walk visits every regular file below a root so callers
// can rewrite names and contents. All functions take absolute paths and
// never consult the process working directory.
package tree
