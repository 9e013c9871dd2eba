// Package apidocs serves the OpenAPI document describing the HTTP API and
// checks requests and responses against it.
package apidocs

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"gopkg.in/yaml.v3"

	"github.com/rai/myapp-backend/internal/platform/httpserver"
)

//go:embed openapi.yaml
var spec []byte

// ErrNoRoute is returned when a request matches no documented operation.
var ErrNoRoute = errors.New("no documented operation matches the request")

// Document is a loaded and validated OpenAPI document.
// It is safe for concurrent use.
type Document struct {
	doc    *openapi3.T
	router routers.Router
	json   []byte
	yaml   []byte
}

// Load parses the embedded document, stamps it with version and validates it.
func Load(ctx context.Context, version string) (*Document, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("loading openapi document: %w", err)
	}
	if version != "" {
		doc.Info.Version = version
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("building openapi router: %w", err)
	}

	jsonDoc, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("rendering openapi json: %w", err)
	}
	yamlDoc, err := toYAML(jsonDoc)
	if err != nil {
		return nil, fmt.Errorf("rendering openapi yaml: %w", err)
	}

	return &Document{doc: doc, router: router, json: jsonDoc, yaml: yamlDoc}, nil
}

// Spec returns the parsed document. Callers must not modify it.
func (d *Document) Spec() *openapi3.T { return d.doc }

func (d *Document) JSON() []byte { return d.json }

func (d *Document) YAML() []byte { return d.yaml }

// RegisterRoutes serves the document at /api-docs (JSON) and
// /api-docs.yaml.
func (d *Document) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api-docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(d.json)
	})
	mux.HandleFunc("GET /api-docs.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(d.yaml)
	})
}

// ValidateRequest checks r against the documented operation. The body, if
// any, is left readable for the next handler.
func (d *Document) ValidateRequest(r *http.Request) error {
	route, pathParams, err := d.router.FindRoute(r)
	if err != nil {
		return fmt.Errorf("%w: %s %s", ErrNoRoute, r.Method, r.URL.Path)
	}

	if r.Body != nil && r.Body != http.NoBody {
		body, err := io.ReadAll(io.LimitReader(r.Body, httpserver.MaxBodyBytes))
		if err != nil {
			return fmt.Errorf("reading request body: %w", err)
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		defer func() { r.Body = io.NopCloser(bytes.NewReader(body)) }()
	}

	return openapi3filter.ValidateRequest(r.Context(), &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			MultiError: true,
		},
	})
}

// ValidateResponse checks a response produced for r. Status codes the
// document does not list are errors.
func (d *Document) ValidateResponse(r *http.Request, status int, header http.Header, body []byte) error {
	route, pathParams, err := d.router.FindRoute(r)
	if err != nil {
		return fmt.Errorf("%w: %s %s", ErrNoRoute, r.Method, r.URL.Path)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: pathParams,
			Route:      route,
		},
		Status: status,
		Header: header,
		Options: &openapi3filter.Options{
			MultiError:            true,
			IncludeResponseStatus: true,
		},
	}
	if len(body) > 0 {
		input.SetBodyBytes(body)
	}
	return openapi3filter.ValidateResponse(r.Context(), input)
}

// RequestValidation rejects requests that do not match the document with a
// 400. Requests for undocumented routes are passed through so the mux can
// answer them.
func (d *Document) RequestValidation(logger *slog.Logger) httpserver.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := d.ValidateRequest(r)
			switch {
			case err == nil, errors.Is(err, ErrNoRoute):
				next.ServeHTTP(w, r)
			default:
				logger.DebugContext(r.Context(), "request rejected by openapi validation",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("error", err),
				)
				httpserver.WriteError(w, http.StatusBadRequest, "request does not match the API document")
			}
		})
	}
}

// toYAML re-encodes a JSON document as block-style YAML, keeping key order.
func toYAML(jsonDoc []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(jsonDoc, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// blockStyle clears the flow and quoting styles JSON input comes with.
// The encoder re-quotes scalars that would otherwise change type.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}
