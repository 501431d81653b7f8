package render

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"pumpterm/errors"
	"pumpterm/lemma"
)

// JSONRenderer formats results as indented JSON documents
type JSONRenderer struct{}

// NewJSONRenderer creates a new JSON renderer
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// RenderOutcome formats a single outcome
func (r *JSONRenderer) RenderOutcome(outcome lemma.EvaluationOutcome) ([]byte, error) {
	return r.marshal(outcome)
}

// RenderOutcomes formats a JSON array of outcomes
func (r *JSONRenderer) RenderOutcomes(outcomes []lemma.EvaluationOutcome) ([]byte, error) {
	if outcomes == nil {
		outcomes = []lemma.EvaluationOutcome{}
	}
	return r.marshal(outcomes)
}

// RenderError formats {"error": {...}}
func (r *JSONRenderer) RenderError(err error) ([]byte, error) {
	return r.marshal(newErrorDocument(err))
}

// GetName returns the name of the renderer
func (r *JSONRenderer) GetName() string {
	return "json"
}

func (r *JSONRenderer) marshal(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.WrapError(err, errors.CodeRenderFailed, "failed to render JSON")
	}
	return append(data, '\n'), nil
}

// YAMLRenderer formats results as YAML documents
type YAMLRenderer struct{}

// NewYAMLRenderer creates a new YAML renderer
func NewYAMLRenderer() *YAMLRenderer {
	return &YAMLRenderer{}
}

// RenderOutcome formats a single outcome
func (r *YAMLRenderer) RenderOutcome(outcome lemma.EvaluationOutcome) ([]byte, error) {
	return r.marshal(outcome)
}

// RenderOutcomes formats a YAML sequence of outcomes
func (r *YAMLRenderer) RenderOutcomes(outcomes []lemma.EvaluationOutcome) ([]byte, error) {
	if outcomes == nil {
		outcomes = []lemma.EvaluationOutcome{}
	}
	return r.marshal(outcomes)
}

// RenderError formats error: {...}
func (r *YAMLRenderer) RenderError(err error) ([]byte, error) {
	return r.marshal(newErrorDocument(err))
}

// GetName returns the name of the renderer
func (r *YAMLRenderer) GetName() string {
	return "yaml"
}

func (r *YAMLRenderer) marshal(v interface{}) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, errors.WrapError(err, errors.CodeRenderFailed, "failed to render YAML")
	}
	return data, nil
}
