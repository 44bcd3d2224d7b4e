package scaffold

import (
	"github.com/tpaseed/cli/internal/element"
	oerrors "github.com/tpaseed/cli/internal/errors"
	"github.com/tpaseed/cli/internal/output"
)

// CheckName rejects names that cannot be custom elements. It touches no
// files, so callers can run it before resolving a template.
func CheckName(name string) error {
	if res := element.Validate(name); !res.Valid {
		return oerrors.NewInvalidNameError(name, res.Message)
	}
	return nil
}

// validate rejects names that cannot be custom elements and warns about
// names that are legal but discouraged.
func validate(name string) error {
	res := element.Validate(name)
	if !res.Valid {
		return oerrors.NewInvalidNameError(name, res.Message)
	}
	if res.Message != "" {
		output.Warn(res.Message, "element", name)
	}
	return nil
}
