package rewrite

import (
	"path/filepath"
	"strings"

	"github.com/fabricgen-labs/fabricgen/internal/tree"
)

// Filter decides whether a file is rewritten.
type Filter func(path string) bool

// HasExt matches files whose extension (including the dot) is ext.
func HasExt(ext string) Filter {
	return func(path string) bool {
		return strings.EqualFold(filepath.Ext(path), ext)
	}
}

// Options configures Handler.
type Options struct {
	// Filter selects files to process. Nil accepts every file.
	Filter Filter
	// Renames maps a base name to its replacement. Renaming happens before
	// the content is rewritten.
	Renames map[string]string
	// Rules are applied to the content of every accepted file.
	Rules Rules
	// OnChange, when set, receives the final path of every processed file.
	OnChange func(path string)
}

// Handler returns a tree.FileHandler that renames and rewrites accepted
// files according to opts.
func Handler(opts Options) tree.FileHandler {
	return func(path string) error {
		if opts.Filter != nil && !opts.Filter(path) {
			return nil
		}

		if newName, ok := opts.Renames[filepath.Base(path)]; ok {
			renamed, err := RenameFile(path, newName)
			if err != nil {
				return err
			}
			path = renamed
		}

		if err := RewriteFile(path, opts.Rules); err != nil {
			return err
		}
		if opts.OnChange != nil {
			opts.OnChange(path)
		}
		return nil
	}
}
