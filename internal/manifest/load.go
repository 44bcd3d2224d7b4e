package manifest

import (
	"errors"
	"fmt"

	oerrors "github.com/tpaseed/cli/internal/errors"
)

// Load parses data and checks it against the manifest schema. Both bad JSON
// and schema violations come back as a manifest DetailError.
func Load(filename string, data []byte) (*Manifest, error) {
	m, err := Parse(data)
	if err != nil {
		return nil, oerrors.NewManifestError(filename, "", err)
	}

	violations, err := Validate(filename, data)
	if err != nil {
		return nil, oerrors.NewManifestError(filename, "", err)
	}
	if len(violations) > 0 {
		first := violations[0]
		cause := errors.New(first.Message)
		if len(violations) > 1 {
			cause = fmt.Errorf("%s (and %d more)", first.Message, len(violations)-1)
		}
		return nil, oerrors.NewManifestError(filename, first.Field, cause)
	}

	return m, nil
}
