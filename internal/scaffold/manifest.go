package scaffold

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/tpaseed/cli/internal/manifest"
	"github.com/tpaseed/cli/internal/output"
	"github.com/tpaseed/cli/internal/templates"
)

// buildManifest rewrites the template bower.json for the new element.
func buildManifest(r *run) error {
	data, mode, err := r.read(templates.ManifestFile)
	if err != nil {
		return err
	}

	m, err := manifest.Load(r.templatePath(templates.ManifestFile), data)
	if err != nil {
		return err
	}

	for _, advisory := range manifest.Advisories(m) {
		output.Warn(advisory, "file", templates.ManifestFile)
	}

	err = manifest.Transform(m, manifest.Identity{
		ElementName:        r.elementName,
		Placeholder:        templates.Placeholder,
		GitHubUser:         r.answers.GitHubUser,
		IncludeTestHarness: r.answers.IncludeTestHarness,
	})
	if err != nil {
		return err
	}

	encoded, err := m.Encode()
	if err != nil {
		return err
	}

	r.logManifestDiff(encoded)

	return r.write(templates.ManifestFile, encoded, mode)
}

// logManifestDiff logs, at debug level, how the new manifest differs from
// the one already in the destination.
func (r *run) logManifestDiff(next []byte) {
	existingPath := filepath.Join(r.destination, templates.ManifestFile)
	existing, err := os.ReadFile(existingPath)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		output.Debug("cannot read existing manifest", "path", existingPath, "err", err)
		return
	}

	diff, err := output.DiffJSON("existing "+templates.ManifestFile, existing, "generated "+templates.ManifestFile, next, output.IsTTY())
	if err != nil {
		output.Debug("cannot diff existing manifest", "path", existingPath, "err", err)
		return
	}
	if diff == "" {
		output.Debug("existing manifest is unchanged", "path", existingPath)
		return
	}
	output.Debug("overwriting existing manifest", "path", existingPath, "diff", "\n"+output.IndentDiff(diff, "  "))
}
