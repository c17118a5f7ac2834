package loader

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/*.json
var schemaFS embed.FS

// Violation is a single schema violation with a JSON-pointer path to the
// offending field.
type Violation struct {
	Path    string
	Message string
}

// SchemaValidationError reports every schema violation found in a
// descriptor, not just the first. The engine must refuse to start on it.
type SchemaValidationError struct {
	Schema     string
	Violations []Violation
}

func (e *SchemaValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s descriptor failed schema validation with %d violation(s):",
		e.Schema, len(e.Violations))
	for _, v := range e.Violations {
		path := v.Path
		if path == "" {
			path = "/"
		}
		fmt.Fprintf(&b, "\n  %s: %s", path, v.Message)
	}
	return b.String()
}

var (
	schemaOnce sync.Once
	schemas    map[string]*jsonschema.Schema
)

// compileSchemas compiles the embedded schema documents once. The schemas
// ship with the binary, so a compile failure is a programming error.
func compileSchemas() {
	schemas = map[string]*jsonschema.Schema{}
	for _, name := range []string{"rooms", "world", "config"} {
		data, err := schemaFS.ReadFile("schema/" + name + ".json")
		if err != nil {
			panic(fmt.Sprintf("loader: reading embedded schema %s: %v", name, err))
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(name+".json", bytes.NewReader(data)); err != nil {
			panic(fmt.Sprintf("loader: adding schema %s: %v", name, err))
		}
		sch, err := c.Compile(name + ".json")
		if err != nil {
			panic(fmt.Sprintf("loader: compiling schema %s: %v", name, err))
		}
		schemas[name] = sch
	}
}

// ValidateSchema checks raw JSON against one of the embedded schemas
// ("rooms", "world", or "config"). On failure it returns a
// SchemaValidationError carrying every violation.
func ValidateSchema(name string, data []byte) error {
	schemaOnce.Do(compileSchemas)
	sch, ok := schemas[name]
	if !ok {
		return fmt.Errorf("no such schema %q", name)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing %s descriptor: %w", name, err)
	}

	err := sch.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validating %s descriptor: %w", name, err)
	}
	return &SchemaValidationError{Schema: name, Violations: violations(ve)}
}

// violations flattens a validation error tree into leaf violations.
// Branch entries that merely restate which subschema failed are dropped
// when more specific messages exist underneath them.
func violations(ve *jsonschema.ValidationError) []Violation {
	out := ve.BasicOutput()
	var all, leaves []Violation
	for _, e := range out.Errors {
		v := Violation{Path: e.InstanceLocation, Message: e.Error}
		all = append(all, v)
		if !strings.HasPrefix(e.Error, "doesn't validate with") {
			leaves = append(leaves, v)
		}
	}
	if len(leaves) > 0 {
		return leaves
	}
	return all
}
