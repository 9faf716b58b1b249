package intake

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema names, one per embedded document.
const (
	AssessmentSchema = "assessment"
	QuickSchema      = "quick"
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// compiled returns a cached compiled schema or compiles and caches it.
func compiled(name string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	raw, err := schemaFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("read schema %q: %w", name, err)
	}
	var def any
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://nbplace/%s.json", name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", name, err)
	}

	schemaCache.Store(name, s)
	return s, nil
}

// SchemaJSON returns the raw embedded schema document.
func SchemaJSON(name string) ([]byte, error) {
	return schemaFS.ReadFile("schemas/" + name + ".json")
}

// validate checks raw JSON against a named schema.
func validate(name string, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ValidationError{Schema: name, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	s, err := compiled(name)
	if err != nil {
		return err
	}
	if err := s.Validate(parsed); err != nil {
		return &ValidationError{Schema: name, Err: err}
	}
	return nil
}

// ValidationError reports a submission that does not match its schema.
type ValidationError struct {
	Schema string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s submission: %v", e.Schema, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
