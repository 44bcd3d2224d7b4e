package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"

	"github.com/tpaseed/cli/internal/output"
)

// commit merges the staging directory into the destination. Existing files
// are overwritten and files the run did not generate are left alone.
//
// Top-level entries are copied one by one so the destination directory
// keeps its own permissions instead of taking the staging directory's.
func commit(r *run) error {
	if err := os.MkdirAll(r.destination, 0o755); err != nil {
		return fmt.Errorf("creating destination %s: %w", r.destination, err)
	}

	r.overwritten = nil
	for _, f := range r.fileList() {
		if _, err := os.Lstat(filepath.Join(r.destination, filepath.FromSlash(f))); err == nil {
			r.overwritten = append(r.overwritten, f)
		}
	}

	entries, err := os.ReadDir(r.staging)
	if err != nil {
		return fmt.Errorf("reading staging directory: %w", err)
	}

	for _, e := range entries {
		src := filepath.Join(r.staging, e.Name())
		dst := filepath.Join(r.destination, e.Name())
		if err := copy.Copy(src, dst); err != nil {
			return fmt.Errorf("copying %s into %s: %w", e.Name(), r.destination, err)
		}
	}

	output.Debug("committed generated files", "destination", r.destination, "count", len(r.files), "overwritten", len(r.overwritten))
	return nil
}
