// Package scaffold generates a new custom element project from the seed
// template.
//
// A run validates the element name, collects the answers it needs, writes
// every generated file into a private staging directory and, only once all
// of that succeeded, merges the staging directory into the destination.
package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tpaseed/cli/internal/config"
	"github.com/tpaseed/cli/internal/output"
	"github.com/tpaseed/cli/internal/prompt"
	"github.com/tpaseed/cli/internal/templates"
)

// Options describes one scaffold run.
type Options struct {
	// ElementName is the custom element tag name to generate.
	ElementName string

	// Destination is the project directory. Empty means the working directory.
	Destination string

	// Presets answer questions up front; preset questions are not asked.
	Presets Presets
}

// Result describes a completed run.
type Result struct {
	// Destination is the absolute project directory.
	Destination string

	// Files are the generated files, slash-separated, relative to
	// Destination and sorted.
	Files []string

	// Overwritten are the entries of Files that already existed in
	// Destination before the run.
	Overwritten []string

	// Answers are the answers the run used.
	Answers Answers
}

// Scaffolder generates projects from one template.
type Scaffolder struct {
	source   templates.Source
	store    config.ProjectStore
	prompter prompt.Prompter
}

// New returns a Scaffolder. store may be nil, in which case a file store in
// the destination directory is used.
func New(source templates.Source, store config.ProjectStore, prompter prompt.Prompter) *Scaffolder {
	return &Scaffolder{
		source:   source,
		store:    store,
		prompter: prompter,
	}
}

// run holds the state shared by the steps of one scaffold run.
type run struct {
	source      templates.Source
	elementName string
	answers     Answers
	destination string
	staging     string
	files       map[string]struct{}
	overwritten []string
}

type step struct {
	name string
	fn   func(*run) error
}

// Run executes the scaffold. On error the destination holds no generated
// files, although the GitHub username may already have been saved.
func (s *Scaffolder) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := validate(opts.ElementName); err != nil {
		return nil, err
	}

	dest := opts.Destination
	if dest == "" {
		dest = "."
	}
	dest, err := filepath.Abs(dest)
	if err != nil {
		return nil, fmt.Errorf("resolving destination: %w", err)
	}

	store := s.store
	if store == nil {
		store = config.NewFileStore(dest)
	}

	answers, err := collectAnswers(store, s.prompter, opts.Presets)
	if err != nil {
		return nil, err
	}

	staging, err := os.MkdirTemp("", "tpa-seed-*")
	if err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			output.Warn("failed to remove staging directory", "path", staging, "err", err)
		}
	}()

	r := &run{
		source:      s.source,
		elementName: opts.ElementName,
		answers:     answers,
		destination: dest,
		staging:     staging,
		files:       make(map[string]struct{}),
	}

	chain := []step{
		{"copy template tree", copyTemplateTree},
		{"copy seed file", copySeedFile},
		{"build manifest", buildManifest},
	}
	if answers.IncludeTestHarness {
		chain = append(chain, step{"copy test harness", copyTestHarness})
	}
	chain = append(chain,
		step{"resolve ignore file", resolveIgnoreFile},
		step{"commit", commit},
	)

	for _, st := range chain {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		output.Debug("scaffold step", "step", st.name)
		if err := st.fn(r); err != nil {
			return nil, err
		}
	}

	return &Result{
		Destination: dest,
		Files:       r.fileList(),
		Overwritten: r.overwritten,
		Answers:     answers,
	}, nil
}

func (r *run) fileList() []string {
	files := make([]string, 0, len(r.files))
	for f := range r.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}
