package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ProjectFile is the per-project answers file in the destination root.
	ProjectFile = ".yo-rc.json"

	// ProjectNamespace is the top-level key tpa-seed owns in ProjectFile.
	ProjectNamespace = "generator-tpa-seed"
)

// ProjectConfig holds the answers remembered between runs in one project.
type ProjectConfig struct {
	GitHubUser string
}

// ProjectStore loads and saves ProjectConfig for a destination directory.
type ProjectStore interface {
	Load() (ProjectConfig, error)
	Save(ProjectConfig) error
}

// FileStore keeps ProjectConfig in ProjectFile. Sections written by other
// generators, and unknown keys in its own section, are left as they are.
type FileStore struct {
	path string
}

// NewFileStore returns a store for ProjectFile inside dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, ProjectFile)}
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Load returns the saved answers. A missing file yields a zero ProjectConfig.
func (s *FileStore) Load() (ProjectConfig, error) {
	_, section, err := s.read()
	if err != nil {
		return ProjectConfig{}, err
	}

	var cfg ProjectConfig
	if raw, ok := section["ghUser"]; ok {
		if err := json.Unmarshal(raw, &cfg.GitHubUser); err != nil {
			return ProjectConfig{}, fmt.Errorf("%s: ghUser: %w", s.path, err)
		}
	}
	return cfg, nil
}

// Save writes cfg into the tpa-seed section, creating the file if needed.
func (s *FileStore) Save(cfg ProjectConfig) error {
	doc, section, err := s.read()
	if err != nil {
		return err
	}

	user, err := json.Marshal(cfg.GitHubUser)
	if err != nil {
		return err
	}
	section["ghUser"] = user

	encoded, err := json.Marshal(section)
	if err != nil {
		return err
	}
	doc[ProjectNamespace] = encoded

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(s.path), err)
	}
	if err := os.WriteFile(s.path, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// read returns the whole document and the tpa-seed section, both non-nil.
func (s *FileStore) read() (map[string]json.RawMessage, map[string]json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	section := map[string]json.RawMessage{}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, section, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	if doc == nil {
		doc = map[string]json.RawMessage{}
	}

	if raw, ok := doc[ProjectNamespace]; ok {
		if err := json.Unmarshal(raw, &section); err != nil {
			return nil, nil, fmt.Errorf("parsing %s: %s: %w", s.path, ProjectNamespace, err)
		}
		if section == nil {
			section = map[string]json.RawMessage{}
		}
	}

	return doc, section, nil
}
