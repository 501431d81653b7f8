package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"pumpterm/errors"
	"pumpterm/jobmanager"
	"pumpterm/lemma"
	"pumpterm/logging"
	"pumpterm/render"
)

// Expectations a batch case may declare besides an error code.
const (
	expectMember    = "member"
	expectNotMember = "not-member"
)

// scalar is a batch field value. Numbers and booleans are kept as their
// literal text so that i: 2 and i: "2" mean the same thing.
type scalar string

// UnmarshalJSON accepts a JSON string or any other JSON literal.
func (v *scalar) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = scalar(s)
		return nil
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return fmt.Errorf("expected a scalar value, got %s", trimmed)
	}
	*v = scalar(trimmed)
	return nil
}

// UnmarshalYAML accepts any YAML scalar.
func (v *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	*v = scalar(node.Value)
	return nil
}

// batchCase is one entry of a batch file. A key left out stays nil and
// becomes an absent field; a key written with no value (x: or "x": null) is
// an empty one.
type batchCase struct {
	Name     string
	S        *scalar
	X        *scalar
	Y        *scalar
	Z        *scalar
	I        *scalar
	P        *scalar
	Language *scalar
	Expect   string
}

// inputFields maps batch keys to the case fields they fill.
func (c *batchCase) inputFields() map[string]**scalar {
	return map[string]**scalar{
		"s":        &c.S,
		"x":        &c.X,
		"y":        &c.Y,
		"z":        &c.Z,
		"i":        &c.I,
		"p":        &c.P,
		"language": &c.Language,
	}
}

// UnmarshalYAML decodes a case mapping. yaml.v3 skips custom unmarshalers
// for null values, so keys are walked here to keep null keys present.
func (c *batchCase) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: a batch case must be a mapping", node.Line)
	}

	fields := c.inputFields()
	for k := 0; k+1 < len(node.Content); k += 2 {
		key, value := node.Content[k].Value, node.Content[k+1]
		switch key {
		case "name":
			if err := value.Decode(&c.Name); err != nil {
				return err
			}
		case "expect":
			if err := value.Decode(&c.Expect); err != nil {
				return err
			}
		default:
			target, ok := fields[key]
			if !ok {
				continue
			}
			v := new(scalar)
			if value.ShortTag() != "!!null" {
				if err := v.UnmarshalYAML(value); err != nil {
					return err
				}
			}
			*target = v
		}
	}
	return nil
}

// UnmarshalJSON decodes a case object, keeping null keys present.
func (c *batchCase) UnmarshalJSON(data []byte) error {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err != nil {
		return err
	}

	fields := c.inputFields()
	for key, raw := range object {
		switch key {
		case "name":
			if err := json.Unmarshal(raw, &c.Name); err != nil {
				return err
			}
		case "expect":
			if err := json.Unmarshal(raw, &c.Expect); err != nil {
				return err
			}
		default:
			target, ok := fields[key]
			if !ok {
				continue
			}
			v := new(scalar)
			if string(raw) != "null" {
				if err := v.UnmarshalJSON(raw); err != nil {
					return err
				}
			}
			*target = v
		}
	}
	return nil
}

func (c batchCase) inputs() lemma.RawInputs {
	raw := lemma.RawInputs{
		S: c.S.field(),
		X: c.X.field(),
		Y: c.Y.field(),
		Z: c.Z.field(),
		I: c.I.field(),
		P: c.P.field(),
	}
	if c.Language != nil {
		raw.Language = string(*c.Language)
	}
	return raw
}

func (v *scalar) field() lemma.Field {
	if v == nil {
		return lemma.Field{}
	}
	return lemma.Text(string(*v))
}

// batchResult records how one case fared against its expectation.
type batchResult struct {
	Name    string
	Outcome lemma.EvaluationOutcome
	Err     error
	Got     string
	Passed  bool
}

// loadBatchCases reads a YAML or JSON list of cases, chosen by extension.
func loadBatchCases(path string) ([]batchCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CodeBatchLoad, "failed to read batch file").
			WithContext("path", path)
	}

	var cases []batchCase
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &cases)
	default:
		err = yaml.Unmarshal(data, &cases)
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CodeBatchLoad, "failed to parse batch file").
			WithContext("path", path)
	}

	for i := range cases {
		if cases[i].Name == "" {
			cases[i].Name = fmt.Sprintf("case %d", i+1)
		}
	}
	return cases, nil
}

// evaluateCase runs one case and compares the result with its expectation.
// A case without an expectation passes unless evaluation fails outright.
func evaluateCase(c batchCase) batchResult {
	result := batchResult{Name: c.Name}
	result.Outcome, result.Err = lemma.ValidateAndPump(c.inputs())

	switch {
	case result.Err != nil:
		result.Got = errors.CodeOf(result.Err)
	case result.Outcome.InLanguage:
		result.Got = expectMember
	default:
		result.Got = expectNotMember
	}

	expect := strings.TrimSpace(c.Expect)
	if expect == "" {
		result.Passed = result.Err == nil
	} else {
		result.Passed = strings.EqualFold(expect, result.Got)
	}
	return result
}

// evaluateAll evaluates cases on at most workers goroutines and returns the
// results in file order.
func evaluateAll(ctx context.Context, cases []batchCase, workers int) ([]batchResult, error) {
	jm := jobmanager.NewJobManager(ctx, workers)
	defer jm.Shutdown()

	for _, c := range cases {
		c := c // per-iteration copy; go.mod targets go 1.21 loop semantics
		if _, err := jm.Submit(c.Name, func(ctx context.Context) (interface{}, error) {
			return evaluateCase(c), nil
		}); err != nil {
			return nil, err
		}
	}
	jm.Wait()

	jobs := jm.ListJobs()
	results := make([]batchResult, 0, len(jobs))
	for _, job := range jobs {
		if err := job.GetError(); err != nil {
			return nil, errors.WrapError(err, errors.CodeBatchLoad, "batch case did not run").
				WithContext("case", job.Name)
		}
		results = append(results, job.GetResult().(batchResult))
	}
	return results, nil
}

// runBatchFile evaluates every case in path, prints each result followed by
// a summary and returns the process exit code.
func runBatchFile(path string, workers int, renderer render.Renderer, logger logging.Logger, stdout, stderr io.Writer) int {
	log := logger.WithComponent("batch")

	cases, err := loadBatchCases(path)
	if err != nil {
		log.LogError(err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsageError
	}
	log.Debug("batch file loaded",
		logging.StringField("path", path),
		logging.IntField("cases", len(cases)),
		logging.IntField("workers", workers))

	start := time.Now()
	results, err := evaluateAll(context.Background(), cases, workers)
	if err != nil {
		log.LogError(err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsageError
	}
	log.Debug("batch evaluated", logging.DurationField("elapsed", time.Since(start)))

	passed, failed := 0, 0
	for i, result := range results {
		expect := strings.TrimSpace(cases[i].Expect)

		var data []byte
		if result.Err != nil {
			data, err = renderer.RenderError(result.Err)
		} else {
			data, err = renderer.RenderOutcome(result.Outcome)
		}
		if err != nil {
			log.LogError(err)
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsageError
		}

		switch {
		case result.Passed:
			passed++
			fmt.Fprintf(stdout, "PASS %s\n", result.Name)
		case expect == "":
			failed++
			fmt.Fprintf(stdout, "FAIL %s: %s\n", result.Name, result.Got)
		default:
			failed++
			fmt.Fprintf(stdout, "FAIL %s: expected %s, got %s\n", result.Name, expect, result.Got)
		}
		if _, err := stdout.Write(data); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", errors.WrapError(err, errors.CodeOutputWrite, "failed to write output"))
			return exitUsageError
		}
		fmt.Fprintln(stdout)

		log.Debug("batch case evaluated",
			logging.StringField("name", result.Name),
			logging.StringField("result", result.Got),
			logging.BoolField("passed", result.Passed))
	}

	fmt.Fprintf(stdout, "%d passed, %d failed\n", passed, failed)
	if failed > 0 {
		return exitRejected
	}
	return exitOK
}
