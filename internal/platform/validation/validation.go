// Package validation checks JSON request bodies against JSON Schemas.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrMalformedJSON is returned when the body is not valid JSON at all.
var ErrMalformedJSON = errors.New("request body is not valid JSON")

// FieldError describes one schema violation.
type FieldError struct {
	// Field is the JSON pointer of the offending value without the leading
	// slash, e.g. "email". Empty for errors about the document as a whole.
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Error collects every violation found in a document.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Schema is a compiled JSON Schema. It is safe for concurrent use.
type Schema struct {
	name   string
	schema *jsonschema.Schema
}

// Compile compiles a draft 2020-12 schema. Format keywords such as
// "email" are asserted, not just annotated.
func Compile(name string, schema []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	url := name + ".json"
	if err := compiler.AddResource(url, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("adding schema %s: %w", name, err)
	}

	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", name, err)
	}
	return &Schema{name: name, schema: compiled}, nil
}

// MustCompile is like Compile but panics on error. Use it for schemas
// embedded in the binary.
func MustCompile(name string, schema []byte) *Schema {
	s, err := Compile(name, schema)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks a raw JSON document. It returns ErrMalformedJSON for
// unparsable input and an *Error listing violations otherwise.
func (s *Schema) Validate(data []byte) error {
	doc, err := decode(data)
	if err != nil {
		return err
	}

	if err := s.schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return toError(verr)
		}
		return fmt.Errorf("validating against %s: %w", s.name, err)
	}
	return nil
}

func decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, ErrMalformedJSON
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrMalformedJSON
	}
	return doc, nil
}

func toError(verr *jsonschema.ValidationError) *Error {
	out := &Error{}
	collect(verr, out)
	if len(out.Fields) == 0 {
		out.Fields = append(out.Fields, FieldError{Message: verr.Message})
	}
	sort.SliceStable(out.Fields, func(i, j int) bool {
		return out.Fields[i].Field < out.Fields[j].Field
	})
	return out
}

// collect keeps the leaves of the cause tree; inner nodes only say
// "doesn't validate with ...".
func collect(verr *jsonschema.ValidationError, out *Error) {
	if len(verr.Causes) == 0 {
		out.Fields = append(out.Fields, FieldError{
			Field:   fieldFromPointer(verr.InstanceLocation),
			Message: verr.Message,
		})
		return
	}
	for _, cause := range verr.Causes {
		collect(cause, out)
	}
}

func fieldFromPointer(ptr string) string {
	return strings.ReplaceAll(strings.TrimPrefix(ptr, "/"), "/", ".")
}
