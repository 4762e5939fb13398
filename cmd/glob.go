// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// recursiveSuffix marks a run argument naming every .lisp file below a
// directory.
const recursiveSuffix = "/..."

// expandArgs replaces each DIR/... argument with the .lisp files found
// below DIR, sorted by path.  Other arguments are kept as given.
func expandArgs(args []string) ([]string, error) {
	files := make([]string, 0, len(args))
	for _, arg := range args {
		dir, recursive := strings.CutSuffix(arg, recursiveSuffix)
		if !recursive {
			files = append(files, arg)
			continue
		}
		if dir == "" {
			dir = "."
		}
		found, err := lispFilesUnder(dir)
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", arg, err)
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("expanding %s: no .lisp files", arg)
		}
		files = append(files, found...)
	}
	return files, nil
}

// lispFilesUnder walks root and returns its .lisp files.  Hidden
// directories below root are not searched.
func lispFilesUnder(root string) ([]string, error) {
	var found []string
	walk := func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case d.IsDir() && path != root && strings.HasPrefix(d.Name(), "."):
			return fs.SkipDir
		case !d.IsDir() && filepath.Ext(path) == ".lisp":
			found = append(found, path)
		}
		return nil
	}
	if err := filepath.WalkDir(root, walk); err != nil {
		return nil, err
	}
	slices.Sort(found)
	return found, nil
}
