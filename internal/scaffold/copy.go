package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	oerrors "github.com/tpaseed/cli/internal/errors"
	"github.com/tpaseed/cli/internal/templates"
)

// excludedNames are never copied by the tree walk, at any depth. Each is
// handled by its own step or not at all.
var excludedNames = map[string]bool{
	templates.ManifestFile:  true,
	templates.SeedFile:      true,
	templates.NpmIgnoreFile: true,
}

// excludedDirs are skipped by the tree walk together with their contents.
var excludedDirs = map[string]bool{
	templates.TestDir: true,
	templates.VCSDir:  true,
}

// copyTemplateTree copies every template file not owned by another step,
// renaming the placeholder in paths and contents.
func copyTemplateTree(r *run) error {
	return fs.WalkDir(r.source.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking template %s: %w", r.source.Root, err)
		}
		if d.IsDir() {
			if p != "." && excludedDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if excludedNames[d.Name()] || p == templates.GitIgnoreFile {
			return nil
		}
		return r.copyRenamed(p, templates.RenameToken(p, r.elementName))
	})
}

// copySeedFile copies the seed element as <element-name>.html.
func copySeedFile(r *run) error {
	return r.copyRenamed(templates.SeedFile, r.elementName+".html")
}

// copyTestHarness copies the test directory, recursively.
func copyTestHarness(r *run) error {
	if _, err := fs.Stat(r.source.FS, templates.TestDir); err != nil {
		return oerrors.NewMissingTemplateError(r.templatePath(templates.TestDir), err)
	}

	return fs.WalkDir(r.source.FS, templates.TestDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		return r.copyRenamed(p, templates.RenameToken(p, r.elementName))
	})
}

// resolveIgnoreFile writes .gitignore from .npmignore when the template has
// one, from .gitignore otherwise. Contents are copied verbatim.
func resolveIgnoreFile(r *run) error {
	src := templates.GitIgnoreFile
	if r.source.Exists(templates.NpmIgnoreFile) {
		src = templates.NpmIgnoreFile
	}

	data, mode, err := r.read(src)
	if err != nil {
		return err
	}
	return r.write(templates.GitIgnoreFile, data, mode)
}

// copyRenamed copies the template file src to dst with the placeholder
// replaced in its contents.
func (r *run) copyRenamed(src, dst string) error {
	data, mode, err := r.read(src)
	if err != nil {
		return err
	}
	return r.write(dst, templates.RenameTokenBytes(data, r.elementName), mode)
}

// read returns a template file and the mode it should be written with.
func (r *run) read(name string) ([]byte, fs.FileMode, error) {
	data, err := fs.ReadFile(r.source.FS, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, oerrors.NewMissingTemplateError(r.templatePath(name), err)
		}
		return nil, 0, fmt.Errorf("reading template file %s: %w", name, err)
	}

	mode := fs.FileMode(0o644)
	if info, err := fs.Stat(r.source.FS, name); err == nil {
		// Embedded files are read-only; generated files must be editable.
		mode = info.Mode().Perm() | 0o200
	}
	return data, mode, nil
}

// write stores a generated file in the staging directory. rel is
// slash-separated and may not escape the project root.
func (r *run) write(rel string, data []byte, mode fs.FileMode) error {
	target, err := securejoin.SecureJoin(r.staging, filepath.FromSlash(rel))
	if err != nil {
		return fmt.Errorf("resolving %s: %w", rel, err)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(target, data, mode); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}

	cleaned, err := filepath.Rel(r.staging, target)
	if err != nil {
		return err
	}
	r.files[filepath.ToSlash(cleaned)] = struct{}{}
	return nil
}

func (r *run) templatePath(name string) string {
	if r.source.Root == templates.EmbeddedRoot {
		return path.Join(r.source.Root, name)
	}
	return filepath.Join(r.source.Root, filepath.FromSlash(name))
}
