// Package render turns evaluation outcomes and errors into bytes for display.
package render

import (
	"fmt"
	"sort"
	"strings"

	"pumpterm/errors"
	"pumpterm/lemma"
)

// Renderer formats evaluation results for output
type Renderer interface {
	// RenderOutcome formats a single outcome
	RenderOutcome(outcome lemma.EvaluationOutcome) ([]byte, error)

	// RenderOutcomes formats a list of outcomes, such as a sweep over i
	RenderOutcomes(outcomes []lemma.EvaluationOutcome) ([]byte, error)

	// RenderError formats a rejected request
	RenderError(err error) ([]byte, error)

	// GetName returns the name of the renderer
	GetName() string
}

// Registry manages renderers by name
type Registry struct {
	renderers       map[string]Renderer
	defaultRenderer string
}

// NewRegistry creates an empty registry whose default is "text"
func NewRegistry() *Registry {
	return &Registry{
		renderers:       make(map[string]Renderer),
		defaultRenderer: "text",
	}
}

// NewDefaultRegistry creates a registry with the text, json and yaml renderers
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	for _, r := range []Renderer{NewTextRenderer(), NewJSONRenderer(), NewYAMLRenderer()} {
		// Names are distinct, registration cannot fail.
		_ = registry.Register(r)
	}
	return registry
}

// Register adds a renderer
func (r *Registry) Register(renderer Renderer) error {
	name := renderer.GetName()
	if _, exists := r.renderers[name]; exists {
		return errors.NewSystemError(errors.CodeDuplicateRenderer,
			fmt.Sprintf("renderer '%s' is already registered", name))
	}

	r.renderers[name] = renderer
	return nil
}

// Get returns the renderer registered under name, matched case-insensitively
func (r *Registry) Get(name string) (Renderer, error) {
	renderer, exists := r.renderers[strings.ToLower(strings.TrimSpace(name))]
	if !exists {
		return nil, errors.NewUserError(errors.CodeUnknownFormat,
			fmt.Sprintf("Unknown output format '%s'. Available: %s", name, strings.Join(r.Names(), ", ")))
	}
	return renderer, nil
}

// Default returns the default renderer
func (r *Registry) Default() (Renderer, error) {
	return r.Get(r.defaultRenderer)
}

// SetDefault sets the default renderer
func (r *Registry) SetDefault(name string) error {
	if _, err := r.Get(name); err != nil {
		return err
	}
	r.defaultRenderer = strings.ToLower(strings.TrimSpace(name))
	return nil
}

// Names returns the names of all registered renderers, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// errorDocument is the structured form of a rejected request
type errorDocument struct {
	Error errorBody `json:"error" yaml:"error"`
}

type errorBody struct {
	Code    string                 `json:"code,omitempty" yaml:"code,omitempty"`
	Message string                 `json:"message" yaml:"message"`
	Context map[string]interface{} `json:"context,omitempty" yaml:"context,omitempty"`
}

func newErrorDocument(err error) errorDocument {
	body := errorBody{Message: errors.MessageOf(err)}
	if e, ok := errors.AsError(err); ok {
		body.Code = e.Code
		if len(e.Context) > 0 {
			body.Context = e.Context
		}
	}
	return errorDocument{Error: body}
}
