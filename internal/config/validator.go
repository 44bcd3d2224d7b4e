package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE []byte

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		fmt.Fprintf(&sb, "  %s: %s\n", err.Field, err.Message)
	}
	return sb.String()
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	compiled := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if compiled.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", compiled.Err())
	}

	schema := compiled.LookupPath(cue.ParsePath("#Config"))
	if !schema.Exists() {
		return nil, fmt.Errorf("schema has no #Config definition")
	}

	return &Validator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// ValidateBytes validates raw YAML config content.
func (v *Validator) ValidateBytes(data []byte) error {
	doc := map[string]any{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ValidationErrors{{Field: "(file)", Message: err.Error()}}
	}
	if doc == nil {
		doc = map[string]any{}
	}

	value := v.schema.Unify(v.ctx.Encode(doc))

	var errs ValidationErrors
	if err := value.Validate(cue.Concrete(true)); err != nil {
		for _, e := range cueerrors.Errors(err) {
			format, args := e.Msg()
			errs = append(errs, ValidationError{
				Field:   fieldPath(e.Path()),
				Message: fmt.Sprintf(format, args...),
			})
		}
	}

	if command, ok := lookupString(doc, "install", "command"); ok {
		if _, err := shellquote.Split(command); err != nil {
			errs = append(errs, ValidationError{
				Field:   "install.command",
				Message: err.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateFile validates a configuration file at the given path.
func (v *Validator) ValidateFile(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	return v.ValidateBytes(data)
}

func lookupString(doc map[string]any, keys ...string) (string, bool) {
	var current any = doc
	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return "", false
		}
		current = m[key]
	}
	s, ok := current.(string)
	return s, ok
}

// fieldPath joins an error path, dropping the schema definition it was
// reported against.
func fieldPath(path []string) string {
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	return strings.Join(path, ".")
}
