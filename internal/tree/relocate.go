package tree

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// stagingPrefix names the temporary directory a tree is parked in while
// its old ancestors are pruned.
const stagingPrefix = ".relocate-"

// Relocate moves the directory at oldPath to newPath. Both paths must be
// absolute. The two paths may share any number of leading components, and
// either may be nested inside the other.
//
// The tree is first renamed into a staging directory that is disjoint from
// both paths, then the directories left empty between oldPath and the
// deepest shared ancestor are removed, and finally the staging directory is
// renamed to newPath. Directories that still hold other content are kept.
//
// Identical paths are rejected with ErrInvalidArgument. If a step after
// staging fails, the tree stays at the staging path and the returned error
// names it.
func Relocate(oldPath, newPath string) error {
	if !filepath.IsAbs(oldPath) || !filepath.IsAbs(newPath) {
		return &PathError{Op: "relocate", Path: oldPath,
			Err: fmt.Errorf("%w: paths must be absolute (old %q, new %q)", ErrInvalidArgument, oldPath, newPath)}
	}

	oldParts := Components(oldPath)
	newParts := Components(newPath)
	oldPath = joinComponents(oldParts, len(oldParts))
	newPath = joinComponents(newParts, len(newParts))

	diffIndex := CommonPrefixLen(oldParts, newParts)
	if diffIndex == len(oldParts) && diffIndex == len(newParts) {
		return &PathError{Op: "relocate", Path: oldPath,
			Err: fmt.Errorf("%w: source and destination are the same", ErrInvalidArgument)}
	}
	if diffIndex == 0 {
		return &PathError{Op: "relocate", Path: oldPath,
			Err: fmt.Errorf("%w: %s and %s share no common root", ErrInvalidArgument, oldPath, newPath)}
	}

	info, err := os.Stat(oldPath)
	if err != nil {
		return &PathError{Op: "relocate", Path: oldPath, Err: err}
	}
	if !info.IsDir() {
		return &PathError{Op: "relocate", Path: oldPath,
			Err: fmt.Errorf("%w: not a directory", ErrInvalidArgument)}
	}

	newIsAncestor := diffIndex == len(newParts)
	oldIsAncestor := diffIndex == len(oldParts)

	// Pruning stops above the shared ancestor, except that a destination
	// which is itself an ancestor of the source has to be emptied first.
	pruneFloor := diffIndex
	if newIsAncestor {
		if err := checkOnlyPath(oldParts, len(newParts)); err != nil {
			return err
		}
		pruneFloor = diffIndex - 1
	} else if _, err := os.Lstat(newPath); err == nil {
		return &PathError{Op: "relocate", Path: newPath, Err: os.ErrExist}
	} else if !os.IsNotExist(err) {
		return &PathError{Op: "relocate", Path: newPath, Err: err}
	}

	diffRoot := joinComponents(oldParts, diffIndex)
	stagingParent := diffRoot
	if newIsAncestor || oldIsAncestor {
		stagingParent = filepath.Dir(diffRoot)
	}
	staging, err := stagingPath(stagingParent)
	if err != nil {
		return err
	}

	if err := os.Rename(oldPath, staging); err != nil {
		return &PathError{Op: "stage", Path: oldPath, Err: err}
	}

	if err := pruneEmpty(oldParts, pruneFloor); err != nil {
		return stranded(staging, err)
	}

	if err := os.MkdirAll(filepath.Dir(newPath), 0755); err != nil {
		return stranded(staging, &PathError{Op: "mkdir", Path: filepath.Dir(newPath), Err: err})
	}

	if err := os.Rename(staging, newPath); err != nil {
		return stranded(staging, &PathError{Op: "rename", Path: newPath, Err: err})
	}
	return nil
}

// stagingPath returns a fresh, non-existent path directly under parent.
func stagingPath(parent string) (string, error) {
	for {
		p := filepath.Join(parent, stagingPrefix+uuid.NewString())
		_, err := os.Lstat(p)
		if os.IsNotExist(err) {
			return p, nil
		}
		if err != nil {
			return "", &PathError{Op: "stage", Path: p, Err: err}
		}
	}
}

// checkOnlyPath verifies that every directory from the first `from`
// components of parts down to the parent of parts holds nothing but the
// next component. It guards relocating a tree onto one of its ancestors.
func checkOnlyPath(parts []string, from int) error {
	for i := from; i < len(parts); i++ {
		dir := joinComponents(parts, i)
		entries, err := os.ReadDir(dir)
		if err != nil {
			return &PathError{Op: "relocate", Path: dir, Err: err}
		}
		if len(entries) != 1 || entries[0].Name() != parts[i] {
			return &PathError{Op: "relocate", Path: dir,
				Err: fmt.Errorf("%w: destination holds other content", os.ErrExist)}
		}
	}
	return nil
}

// pruneEmpty removes the ancestors of the (already moved) tree at parts,
// deepest first, while they are empty and deeper than floor components.
func pruneEmpty(parts []string, floor int) error {
	for i := len(parts) - 1; i > floor; i-- {
		dir := joinComponents(parts, i)
		entries, err := os.ReadDir(dir)
		if err != nil {
			return &PathError{Op: "prune", Path: dir, Err: err}
		}
		if len(entries) > 0 {
			return nil
		}
		if err := os.Remove(dir); err != nil {
			return &PathError{Op: "prune", Path: dir, Err: err}
		}
	}
	return nil
}

// stranded annotates err with the location of the staged tree.
func stranded(staging string, err error) error {
	return fmt.Errorf("%w (tree left at %s)", err, staging)
}
