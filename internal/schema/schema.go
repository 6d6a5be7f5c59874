// Package schema validates serialized results against the embedded JSON Schema.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed results.schema.json
var resultsSchema []byte

const resultsSchemaURL = "quizharvest://results.schema.json"

// Results validates results documents.
type Results struct {
	schema *jsonschema.Schema
}

// New compiles the embedded results schema.
func New() (*Results, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(resultsSchemaURL, bytes.NewReader(resultsSchema)); err != nil {
		return nil, fmt.Errorf("load results schema: %w", err)
	}
	compiled, err := compiler.Compile(resultsSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile results schema: %w", err)
	}
	return &Results{schema: compiled}, nil
}

// Validate checks one JSON results document.
func (r *Results) Validate(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var doc interface{}
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("parse results: %w", err)
	}
	if err := r.schema.Validate(doc); err != nil {
		return fmt.Errorf("results do not match schema: %w", err)
	}
	return nil
}

// Raw returns the embedded schema document.
func Raw() []byte {
	return append([]byte(nil), resultsSchema...)
}
