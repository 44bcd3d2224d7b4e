package manifest

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaSource []byte

// Violation describes one place where a manifest does not fit the schema.
type Violation struct {
	Field   string
	Message string
}

// Validator checks manifest documents against the embedded #Manifest schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

var (
	defaultValidator     *Validator
	defaultValidatorErr  error
	defaultValidatorOnce sync.Once
)

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	compiled := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := compiled.Err(); err != nil {
		return nil, fmt.Errorf("compiling manifest schema: %w", err)
	}

	def := compiled.LookupPath(cue.ParsePath("#Manifest"))
	if !def.Exists() {
		return nil, fmt.Errorf("manifest schema has no #Manifest definition")
	}

	return &Validator{ctx: ctx, schema: def}, nil
}

// Validate checks data, a JSON document named filename, against the schema.
// It returns nil when the document fits. A non-nil error means the schema
// itself could not be applied, for example because data is not JSON.
func (v *Validator) Validate(filename string, data []byte) ([]Violation, error) {
	expr, err := cuejson.Extract(filename, data)
	if err != nil {
		return nil, err
	}

	doc := v.ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return nil, err
	}

	unified := v.schema.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return toViolations(err), nil
	}
	return nil, nil
}

func toViolations(err error) []Violation {
	var out []Violation
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		out = append(out, Violation{
			Field:   fieldPath(e.Path()),
			Message: fmt.Sprintf(format, args...),
		})
	}
	return out
}

// Validate checks data with a lazily compiled shared Validator.
func Validate(filename string, data []byte) ([]Violation, error) {
	defaultValidatorOnce.Do(func() {
		defaultValidator, defaultValidatorErr = NewValidator()
	})
	if defaultValidatorErr != nil {
		return nil, defaultValidatorErr
	}
	return defaultValidator.Validate(filename, data)
}

func fieldPath(path []string) string {
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	return strings.Join(path, ".")
}
