// Package templates provides the seed element template tree and the
// placeholder substitution applied while copying it.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	oerrors "github.com/tpaseed/cli/internal/errors"
)

//go:embed all:seed
var seedFS embed.FS

// EmbeddedRoot is the name reported for the built-in template.
const EmbeddedRoot = "embedded:seed"

// Well-known files at the template root.
const (
	ManifestFile  = "bower.json"
	SeedFile      = Placeholder + ".html"
	TestDir       = "test"
	GitIgnoreFile = ".gitignore"
	NpmIgnoreFile = ".npmignore"
	VCSDir        = ".git"
)

// Source is a read-only template tree.
type Source struct {
	// FS holds the template files, rooted at the template root.
	FS fs.FS

	// Root describes where the template came from, for messages.
	Root string
}

// Embedded returns the template compiled into the binary.
func Embedded() Source {
	sub, err := fs.Sub(seedFS, "seed")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(fmt.Sprintf("embedded template: %v", err))
	}
	return Source{FS: sub, Root: EmbeddedRoot}
}

// FromDir returns a template rooted at dir on disk.
func FromDir(dir string) (Source, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Source{}, fmt.Errorf("resolving template directory: %w", err)
	}

	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return Source{}, oerrors.NewNotFoundError(
			"template directory does not exist",
			abs,
			"Pass an existing directory with --template or unset templateDir in the config.",
		)
	}
	if err != nil {
		return Source{}, fmt.Errorf("checking template directory: %w", err)
	}
	if !info.IsDir() {
		return Source{}, oerrors.NewNotFoundError(
			"template path is not a directory",
			abs,
			"Pass a directory with --template.",
		)
	}

	return Source{FS: os.DirFS(abs), Root: abs}, nil
}

// Resolve returns the template at dir, or the embedded template when dir is empty.
func Resolve(dir string) (Source, error) {
	if dir == "" {
		return Embedded(), nil
	}
	return FromDir(dir)
}

// Exists reports whether name exists in the template.
func (s Source) Exists(name string) bool {
	_, err := fs.Stat(s.FS, name)
	return err == nil
}

// ListFiles returns all regular files in the template, slash-separated and sorted.
func (s Source) ListFiles() ([]string, error) {
	var files []string

	err := fs.WalkDir(s.FS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing template %s: %w", s.Root, err)
	}

	sort.Strings(files)
	return files, nil
}

// InDir reports whether the slash-separated path lies under a directory named dir
// at any depth.
func InDir(path, dir string) bool {
	parts := strings.Split(path, "/")
	for _, p := range parts[:len(parts)-1] {
		if p == dir {
			return true
		}
	}
	return false
}
