package rewrite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fabricgen-labs/fabricgen/internal/tree"
)

// Replacement swaps every occurrence of Old for New.
type Replacement struct {
	Old string
	New string
}

// Rules is an ordered list of replacements. Later rules operate on the
// text produced by earlier ones, so order is significant. Applying the same
// rules twice is only stable when no New value contains an Old value.
type Rules []Replacement

// Apply runs every replacement over s in order.
func (r Rules) Apply(s string) string {
	for _, rep := range r {
		if rep.Old == "" {
			continue
		}
		s = strings.ReplaceAll(s, rep.Old, rep.New)
	}
	return s
}

// RewriteFile reads path, applies rules, and writes the result back in
// full with the file's original permissions. Files that are not valid
// UTF-8 are rejected with tree.ErrInvalidData and left untouched.
func RewriteFile(path string, rules Rules) error {
	info, err := os.Stat(path)
	if err != nil {
		return &tree.PathError{Op: "rewrite", Path: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &tree.PathError{Op: "rewrite", Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return &tree.PathError{Op: "rewrite", Path: path,
			Err: fmt.Errorf("%w: file is not valid UTF-8", tree.ErrInvalidData)}
	}

	out := rules.Apply(string(data))
	if out == string(data) {
		return nil
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return &tree.PathError{Op: "rewrite", Path: path, Err: err}
	}
	return nil
}

// RenameFile renames path to newName within the same directory and
// returns the new path.
func RenameFile(path, newName string) (string, error) {
	newPath := filepath.Join(filepath.Dir(path), newName)
	if newPath == path {
		return path, nil
	}
	if _, err := os.Lstat(newPath); err == nil {
		return "", &tree.PathError{Op: "rename", Path: newPath, Err: os.ErrExist}
	}
	if err := os.Rename(path, newPath); err != nil {
		return "", &tree.PathError{Op: "rename", Path: path, Err: err}
	}
	return newPath, nil
}
