package channel

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Files is a Channel over the paths below a directory. Directories are
// listed with a trailing slash and come before files.
type Files struct {
	source
	root string
}

type fileItem struct {
	path  string // Relative to the root, slash separated
	isDir bool
}

// NewFiles walks root. Hidden files and directories are skipped, and so is
// anything that cannot be read.
func NewFiles(root string, opts ...Option) (*Files, error) {
	o := newOptions(opts)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}

	var items []fileItem
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			o.log.Debug().Err(err).Str("path", path).Msg("skipping")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == absRoot {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		items = append(items, fileItem{path: filepath.ToSlash(rel), isDir: d.IsDir()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", root, err)
	}

	// Sort: directories first (alphabetically), then files (alphabetically).
	sort.Slice(items, func(i, j int) bool {
		if items[i].isDir != items[j].isDir {
			return items[i].isDir
		}
		return items[i].path < items[j].path
	})

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.path
		if it.isDir {
			names[i] += "/"
		}
	}

	src, err := newSource(names, o)
	if err != nil {
		return nil, err
	}
	o.log.Debug().Str("root", absRoot).Int("paths", len(names)).Msg("candidates loaded")
	return &Files{source: src, root: absRoot}, nil
}

// Root returns the absolute directory that was listed.
func (f *Files) Root() string { return f.root }
