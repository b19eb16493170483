package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/GravityKit/drip-mcp-server/tools"
)

const schemaBaseURL = "https://drip-mcp-server.local/tools/"

// compileSchemas compiles the input schema of every tool so arguments can
// be checked before they reach the dispatcher.
func compileSchemas(catalog []*tools.Tool) (map[string]*jsonschema.Schema, error) {
	compiled := make(map[string]*jsonschema.Schema, len(catalog))
	for _, t := range catalog {
		data, err := json.Marshal(t.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("schema encode failed for %q: %w", t.Name, err)
		}

		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		schemaURL := schemaBaseURL + t.Name + ".schema.json"
		if err = c.AddResource(schemaURL, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("schema load failed for %q: %w", t.Name, err)
		}
		schema, err := c.Compile(schemaURL)
		if err != nil {
			return nil, fmt.Errorf("schema compile failed for %q: %w", t.Name, err)
		}
		compiled[t.Name] = schema
	}
	return compiled, nil
}

// describeSchemaError flattens a validation error into one line per
// failing leaf, e.g. "/email: expected string, but got number".
func describeSchemaError(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}

	var lines []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "/"
			}
			lines = append(lines, location+": "+e.Message)
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return strings.Join(lines, "; ")
}
