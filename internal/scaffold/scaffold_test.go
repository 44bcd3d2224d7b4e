package scaffold

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpaseed/cli/internal/config"
	oerrors "github.com/tpaseed/cli/internal/errors"
	"github.com/tpaseed/cli/internal/manifest"
	"github.com/tpaseed/cli/internal/output"
	"github.com/tpaseed/cli/internal/templates"
)

const testManifest = `{
  "name": "tpa-seed-element",
  "version": "0.0.0",
  "main": "tpa-seed-element.html",
  "license": "http://polymer.github.io/LICENSE.txt",
  "homepage": "https://github.com/<USERNAME>/tpa-seed-element/",
  "devDependencies": {
    "web-component-tester": "^4.0.0",
    "webcomponentsjs": "webcomponents/webcomponentsjs#^0.7.0"
  }
}
`

type fakePrompter struct {
	user    string
	harness bool

	inputs        []string
	inputDefaults []string
	confirms      []string
}

func (f *fakePrompter) Input(label, def string) (string, error) {
	f.inputs = append(f.inputs, label)
	f.inputDefaults = append(f.inputDefaults, def)
	if f.user == "" {
		return def, nil
	}
	return f.user, nil
}

func (f *fakePrompter) Confirm(label string, _ bool) (bool, error) {
	f.confirms = append(f.confirms, label)
	return f.harness, nil
}

type memoryStore struct {
	cfg   config.ProjectConfig
	saves int
}

func (m *memoryStore) Load() (config.ProjectConfig, error) { return m.cfg, nil }

func (m *memoryStore) Save(cfg config.ProjectConfig) error {
	m.cfg = cfg
	m.saves++
	return nil
}

func minimalTemplate() fstest.MapFS {
	return fstest.MapFS{
		"bower.json":                      {Data: []byte(testManifest)},
		"tpa-seed-element.html":           {Data: []byte("<dom-module id=\"tpa-seed-element\"></dom-module>\n")},
		".gitignore":                      {Data: []byte("bower_components/\n")},
		"demo/index.html":                 {Data: []byte("<tpa-seed-element></tpa-seed-element>\n")},
		"test/index.html":                 {Data: []byte("WCT.loadSuites(['tpa-seed-element_test.html']);\n")},
		"test/tpa-seed-element_test.html": {Data: []byte("<test-fixture id=\"tpa-seed-element\"></test-fixture>\n")},
	}
}

func mapSource(fsys fstest.MapFS) templates.Source {
	return templates.Source{FS: fsys, Root: "/templates/seed"}
}

func quiet(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	restore := output.SetOutput(&buf)
	t.Cleanup(restore)
	return &buf
}

func presets(user string, harness bool) Presets {
	return Presets{GitHubUser: &user, IncludeTestHarness: &harness}
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func readManifest(t *testing.T, dir string) map[string]any {
	t.Helper()

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(readFile(t, dir, "bower.json")), &m))
	return m
}

func TestRunEmbeddedTemplate(t *testing.T) {
	quiet(t)
	dest := t.TempDir()

	s := New(templates.Embedded(), nil, nil)
	res, err := s.Run(context.Background(), Options{
		ElementName: "my-widget",
		Destination: dest,
		Presets:     presets("octocat", true),
	})
	require.NoError(t, err)

	assert.Equal(t, dest, res.Destination)
	assert.Equal(t, Answers{GitHubUser: "octocat", IncludeTestHarness: true}, res.Answers)
	assert.Contains(t, res.Files, "my-widget.html")
	assert.Contains(t, res.Files, "bower.json")
	assert.Contains(t, res.Files, ".gitignore")
	assert.Contains(t, res.Files, "test/my-widget_test.html")

	assert.FileExists(t, filepath.Join(dest, "my-widget.html"))
	assert.DirExists(t, filepath.Join(dest, "test"))

	m := readManifest(t, dest)
	assert.Equal(t, "my-widget", m["name"])
	assert.Equal(t, "my-widget.html", m["main"])
	assert.Equal(t, "https://github.com/octocat/my-widget/", m["homepage"])

	err = filepath.WalkDir(dest, func(p string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		assert.NotContains(t, p, templates.Placeholder)
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.NotContains(t, string(data), templates.Placeholder, "file %s", p)
		return nil
	})
	require.NoError(t, err)

	store, err := config.NewFileStore(dest).Load()
	require.NoError(t, err)
	assert.Equal(t, "octocat", store.GitHubUser)
}

func TestRunWithoutTestHarness(t *testing.T) {
	quiet(t)
	dest := t.TempDir()

	_, err := New(templates.Embedded(), &memoryStore{}, nil).Run(context.Background(), Options{
		ElementName: "my-widget",
		Destination: dest,
		Presets:     presets("octocat", false),
	})
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(dest, "test"))

	dev, ok := readManifest(t, dest)["devDependencies"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, dev, manifest.TestHarnessDependency)
}

func TestRunCopiesEveryTestFile(t *testing.T) {
	quiet(t)
	dest := t.TempDir()
	src := templates.Embedded()

	_, err := New(src, &memoryStore{}, nil).Run(context.Background(), Options{
		ElementName: "my-widget",
		Destination: dest,
		Presets:     presets("octocat", true),
	})
	require.NoError(t, err)

	all, err := src.ListFiles()
	require.NoError(t, err)

	var checked int
	for _, f := range all {
		if !strings.HasPrefix(f, templates.TestDir+"/") {
			continue
		}
		checked++

		want, err := fs.ReadFile(src.FS, f)
		require.NoError(t, err)

		got := readFile(t, dest, templates.RenameToken(f, "my-widget"))
		assert.Equal(t, templates.RenameToken(string(want), "my-widget"), got)
	}
	assert.Positive(t, checked)
}

func TestRunInvalidName(t *testing.T) {
	tests := []string{"widget", "font-face", "My-Widget", "1-widget", ""}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			quiet(t)
			dest := t.TempDir()
			store := &memoryStore{}
			p := &fakePrompter{}

			_, err := New(mapSource(minimalTemplate()), store, p).Run(context.Background(), Options{
				ElementName: name,
				Destination: dest,
			})

			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrValidation))
			assert.Empty(t, p.inputs, "no questions before validation")
			assert.Zero(t, store.saves)

			entries, err := os.ReadDir(dest)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestRunAdvisoryNameContinues(t *testing.T) {
	quiet(t)
	var logs bytes.Buffer
	output.Logger().SetOutput(&logs)
	t.Cleanup(func() { output.Logger().SetOutput(os.Stderr) })

	dest := t.TempDir()
	_, err := New(mapSource(minimalTemplate()), &memoryStore{}, nil).Run(context.Background(), Options{
		ElementName: "x-widget",
		Destination: dest,
		Presets:     presets("octocat", false),
	})

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "x-widget.html"))
	assert.Contains(t, logs.String(), "x-widget")
}

func TestRunPrompts(t *testing.T) {
	t.Run("asks both questions in order", func(t *testing.T) {
		stdout := quiet(t)
		store := &memoryStore{cfg: config.ProjectConfig{GitHubUser: "hubot"}}
		p := &fakePrompter{user: "octocat", harness: true}

		res, err := New(mapSource(minimalTemplate()), store, p).Run(context.Background(), Options{
			ElementName: "my-widget",
			Destination: t.TempDir(),
		})

		require.NoError(t, err)
		assert.Equal(t, []string{GitHubUserQuestion}, p.inputs)
		assert.Equal(t, []string{"hubot"}, p.inputDefaults, "saved username is the default")
		assert.Equal(t, []string{TestHarnessQuestion}, p.confirms)
		assert.Equal(t, "octocat", res.Answers.GitHubUser)
		assert.Equal(t, "octocat", store.cfg.GitHubUser)
		assert.Contains(t, stdout.String(), "tpa-seed-element")
	})

	t.Run("presets skip their questions", func(t *testing.T) {
		stdout := quiet(t)
		p := &fakePrompter{harness: false}
		user := "octocat"

		res, err := New(mapSource(minimalTemplate()), &memoryStore{}, p).Run(context.Background(), Options{
			ElementName: "my-widget",
			Destination: t.TempDir(),
			Presets:     Presets{GitHubUser: &user},
		})

		require.NoError(t, err)
		assert.Empty(t, p.inputs)
		assert.Equal(t, []string{TestHarnessQuestion}, p.confirms)
		assert.False(t, res.Answers.IncludeTestHarness)
		assert.Contains(t, stdout.String(), "Out of the box")
	})

	t.Run("all presets suppress greeting", func(t *testing.T) {
		stdout := quiet(t)
		p := &fakePrompter{}

		_, err := New(mapSource(minimalTemplate()), &memoryStore{}, p).Run(context.Background(), Options{
			ElementName: "my-widget",
			Destination: t.TempDir(),
			Presets:     presets("octocat", true),
		})

		require.NoError(t, err)
		assert.Empty(t, p.inputs)
		assert.Empty(t, p.confirms)
		assert.Empty(t, stdout.String())
	})

	t.Run("missing prompter", func(t *testing.T) {
		quiet(t)

		_, err := New(mapSource(minimalTemplate()), &memoryStore{}, nil).Run(context.Background(), Options{
			ElementName: "my-widget",
			Destination: t.TempDir(),
		})

		assert.Error(t, err)
	})
}

func TestRunIgnoreFileFallback(t *testing.T) {
	tests := []struct {
		name      string
		gitignore string
		npmignore string
		want      string
	}{
		{
			name:      "npmignore wins",
			gitignore: "from-gitignore\n",
			npmignore: "from-npmignore\n",
			want:      "from-npmignore\n",
		},
		{
			name:      "gitignore only",
			gitignore: "from-gitignore\n",
			want:      "from-gitignore\n",
		},
		{
			name:      "npmignore only",
			npmignore: "node_modules/\ntpa-seed-element\n",
			want:      "node_modules/\ntpa-seed-element\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiet(t)
			fsys := minimalTemplate()
			delete(fsys, ".gitignore")
			if tt.gitignore != "" {
				fsys[".gitignore"] = &fstest.MapFile{Data: []byte(tt.gitignore)}
			}
			if tt.npmignore != "" {
				fsys[".npmignore"] = &fstest.MapFile{Data: []byte(tt.npmignore)}
			}

			dest := t.TempDir()
			_, err := New(mapSource(fsys), &memoryStore{}, nil).Run(context.Background(), Options{
				ElementName: "my-widget",
				Destination: dest,
				Presets:     presets("octocat", false),
			})
			require.NoError(t, err)

			assert.Equal(t, tt.want, readFile(t, dest, ".gitignore"))
			assert.NoFileExists(t, filepath.Join(dest, ".npmignore"))
		})
	}
}

func TestRunMissingTemplateFiles(t *testing.T) {
	tests := []struct {
		name    string
		remove  []string
		harness bool
	}{
		{"no ignore file", []string{".gitignore"}, false},
		{"no seed file", []string{"tpa-seed-element.html"}, false},
		{"no manifest", []string{"bower.json"}, false},
		{"no test directory", []string{"test/index.html", "test/tpa-seed-element_test.html"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiet(t)
			fsys := minimalTemplate()
			for _, name := range tt.remove {
				delete(fsys, name)
			}

			dest := t.TempDir()
			_, err := New(mapSource(fsys), &memoryStore{}, nil).Run(context.Background(), Options{
				ElementName: "my-widget",
				Destination: dest,
				Presets:     presets("octocat", tt.harness),
			})

			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrNotFound))

			entries, err := os.ReadDir(dest)
			require.NoError(t, err)
			assert.Empty(t, entries, "nothing is committed after a failed step")
		})
	}
}

func TestRunInvalidManifestCommitsNothing(t *testing.T) {
	quiet(t)
	fsys := minimalTemplate()
	fsys["bower.json"] = &fstest.MapFile{Data: []byte(`{"name": "tpa-seed-element",`)}

	dest := t.TempDir()
	store := config.NewFileStore(dest)
	_, err := New(mapSource(fsys), store, nil).Run(context.Background(), Options{
		ElementName: "my-widget",
		Destination: dest,
		Presets:     presets("octocat", true),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the project store is written")
	assert.Equal(t, config.ProjectFile, entries[0].Name())
}

func TestRunExclusions(t *testing.T) {
	quiet(t)
	fsys := minimalTemplate()
	fsys[".npmignore"] = &fstest.MapFile{Data: []byte("node_modules/\n")}
	fsys["docs/bower.json"] = &fstest.MapFile{Data: []byte("{}")}
	fsys["docs/.npmignore"] = &fstest.MapFile{Data: []byte("x\n")}
	fsys["docs/.gitignore"] = &fstest.MapFile{Data: []byte("build/\n")}
	fsys["docs/test/fixture.html"] = &fstest.MapFile{Data: []byte("x\n")}
	fsys["docs/tpa-seed-element.md"] = &fstest.MapFile{Data: []byte("# tpa-seed-element\n")}
	fsys[".git/HEAD"] = &fstest.MapFile{Data: []byte("ref: refs/heads/main\n")}

	dest := t.TempDir()
	res, err := New(mapSource(fsys), &memoryStore{}, nil).Run(context.Background(), Options{
		ElementName: "my-widget",
		Destination: dest,
		Presets:     presets("octocat", false),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		".gitignore",
		"bower.json",
		"demo/index.html",
		"docs/.gitignore",
		"docs/my-widget.md",
		"my-widget.html",
	}, res.Files)

	assert.Equal(t, "# my-widget\n", readFile(t, dest, "docs/my-widget.md"))
	assert.Equal(t, "build/\n", readFile(t, dest, "docs/.gitignore"))
	assert.NoDirExists(t, filepath.Join(dest, ".git"))
	assert.NoDirExists(t, filepath.Join(dest, "docs", "test"))
}

func TestRunMergesIntoExistingDestination(t *testing.T) {
	quiet(t)
	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, "NOTES.md"), []byte("keep me\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "my-widget.html"), []byte("old\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "bower.json"), []byte(`{"name": "old"}`), 0o644))
	require.NoError(t, os.Chmod(dest, 0o750))

	result, err := New(mapSource(minimalTemplate()), &memoryStore{}, nil).Run(context.Background(), Options{
		ElementName: "my-widget",
		Destination: dest,
		Presets:     presets("octocat", false),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"bower.json", "my-widget.html"}, result.Overwritten)
	assert.Equal(t, "keep me\n", readFile(t, dest, "NOTES.md"))
	assert.Contains(t, readFile(t, dest, "my-widget.html"), `id="my-widget"`)
	assert.Equal(t, "my-widget", readManifest(t, dest)["name"])

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o750), info.Mode().Perm(), "destination keeps its permissions")
}

func TestRunPreservesFileModes(t *testing.T) {
	quiet(t)
	fsys := minimalTemplate()
	fsys["bin/serve.sh"] = &fstest.MapFile{Data: []byte("#!/bin/sh\n"), Mode: 0o755}
	fsys["README.md"] = &fstest.MapFile{Data: []byte("readme\n"), Mode: 0o444}

	dest := t.TempDir()
	_, err := New(mapSource(fsys), &memoryStore{}, nil).Run(context.Background(), Options{
		ElementName: "my-widget",
		Destination: dest,
		Presets:     presets("octocat", false),
	})
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dest, "bin", "serve.sh"))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o755), info.Mode().Perm())

	info, err = os.Stat(filepath.Join(dest, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o644), info.Mode().Perm(), "read-only templates become owner-writable")
}

func TestRunCreatesDestination(t *testing.T) {
	quiet(t)
	dest := filepath.Join(t.TempDir(), "my-widget")

	_, err := New(mapSource(minimalTemplate()), &memoryStore{}, nil).Run(context.Background(), Options{
		ElementName: "my-widget",
		Destination: dest,
		Presets:     presets("octocat", false),
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dest, "my-widget.html"))
}

func TestRunCancelled(t *testing.T) {
	quiet(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dest := t.TempDir()
	_, err := New(mapSource(minimalTemplate()), &memoryStore{}, nil).Run(ctx, Options{
		ElementName: "my-widget",
		Destination: dest,
		Presets:     presets("octocat", false),
	})

	assert.ErrorIs(t, err, context.Canceled)
	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
