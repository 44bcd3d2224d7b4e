package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const (
	// TestHarnessDependency is the devDependencies entry dropped when the
	// test harness is not wanted.
	TestHarnessDependency = "web-component-tester"

	// UserPlaceholder marks where the GitHub username goes in homepage.
	UserPlaceholder = "<USERNAME>"

	// LicenseOwner is the license text replaced by the GitHub username.
	LicenseOwner = "polymer"
)

// Identity is what the scaffolder knows about the element being generated.
type Identity struct {
	ElementName        string
	Placeholder        string
	GitHubUser         string
	IncludeTestHarness bool
}

// Transform rewrites m in place for the element described by id.
func Transform(m *Manifest, id Identity) error {
	if err := m.SetString("name", id.ElementName); err != nil {
		return err
	}
	if err := m.SetString("main", id.ElementName+".html"); err != nil {
		return err
	}

	license, err := m.String("license")
	if err != nil {
		return err
	}
	if err := m.SetString("license", strings.ReplaceAll(license, LicenseOwner, id.GitHubUser)); err != nil {
		return err
	}

	homepage, err := m.String("homepage")
	if err != nil {
		return err
	}
	homepage = strings.ReplaceAll(homepage, UserPlaceholder, id.GitHubUser)
	if id.Placeholder != "" {
		homepage = strings.ReplaceAll(homepage, id.Placeholder, id.ElementName)
	}
	if err := m.SetString("homepage", homepage); err != nil {
		return err
	}

	if id.IncludeTestHarness {
		return nil
	}

	dev, err := m.Object("devDependencies")
	if err != nil {
		return err
	}
	if dev.Delete(TestHarnessDependency) {
		return m.SetObject("devDependencies", dev)
	}
	return nil
}

// Advisories returns non-fatal remarks about m, such as a version that is
// not valid semver.
func Advisories(m *Manifest) []string {
	if !m.Has("version") {
		return nil
	}

	version, err := m.String("version")
	if err != nil {
		return []string{err.Error()}
	}
	if _, err := semver.StrictNewVersion(version); err != nil {
		return []string{fmt.Sprintf("version %q is not valid semver: %v", version, err)}
	}
	return nil
}
