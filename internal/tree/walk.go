package tree

import (
	"os"
	"path/filepath"
)

// FileHandler is called by Walk for each regular file. Symbolic links are
// never passed to it, even when they point at a regular file.
type FileHandler func(path string) error

// Walk visits every regular file under root, depth first, calling visit
// once per file and never for directories. The first error from visit or
// from reading a directory stops the walk and is returned as a *PathError
// naming the offending path.
//
// Symbolic links are skipped, so a file reachable through a link is
// rewritten at most once, through its real path. Directory links are not
// followed.
//
// A directory's entries are listed before any of them is visited, so a
// handler may rename its own file without the new name being visited.
func Walk(root string, visit FileHandler) error {
	info, err := os.Stat(root)
	if err != nil {
		return &PathError{Op: "walk", Path: root, Err: err}
	}
	if !info.IsDir() {
		return &PathError{Op: "walk", Path: root, Err: ErrInvalidArgument}
	}
	return walkDir(root, visit)
}

func walkDir(dir string, visit FileHandler) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &PathError{Op: "walk", Path: dir, Err: err}
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if err := walkDir(path, visit); err != nil {
				return err
			}
			continue
		}
		// Symlinks, sockets and devices.
		if !entry.Type().IsRegular() {
			continue
		}

		if err := visit(path); err != nil {
			return &PathError{Op: "visit", Path: path, Err: err}
		}
	}
	return nil
}
