package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpterm/errors"
	"pumpterm/logging"
	"pumpterm/render"
)

const batchYAML = `
- name: not pumpable
  s: aabb
  x: a
  y: a
  z: bb
  i: 2
  p: 4
  language: a^n b^n
  expect: not-member
- name: missing y
  s: ab
  x: a
  z: b
  i: 1
  p: 4
  expect: MISSING_SPLIT_COMPONENT
- name: empty prefix
  s: aa
  x: ""
  y: a
  z: a
  i: 3
  p: 2
  language: palindromes
  expect: member
`

func runBatch(t *testing.T, path string, workers int) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := runBatchFile(path, workers, render.NewTextRenderer(), logging.NewNopLogger(), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestBatchYAMLAllPass(t *testing.T) {
	code, stdout, stderr := runBatch(t, writeFile(t, "cases.yaml", batchYAML), 2)

	assert.Equal(t, exitOK, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "PASS not pumpable\n")
	assert.Contains(t, stdout, "PASS missing y\nInvalid Input: Please enter values for x, y, and z.\n")
	assert.Contains(t, stdout, "Pumped String (i=3): aaaa\n")
	assert.True(t, strings.HasSuffix(stdout, "3 passed, 0 failed\n"))

	// Results keep file order.
	assert.Less(t, strings.Index(stdout, "not pumpable"), strings.Index(stdout, "missing y"))
	assert.Less(t, strings.Index(stdout, "missing y"), strings.Index(stdout, "empty prefix"))
}

func TestBatchFailedExpectation(t *testing.T) {
	path := writeFile(t, "cases.yaml", `
- name: wrong guess
  s: aabb
  x: a
  y: a
  z: bb
  i: 2
  p: 4
  language: a^n b^n
  expect: member
- s: ab
  x: a
  y: b
  z: c
  i: 1
  p: 4
`)

	code, stdout, _ := runBatch(t, path, 1)

	assert.Equal(t, exitRejected, code)
	assert.Contains(t, stdout, "FAIL wrong guess: expected member, got not-member\n")
	assert.Contains(t, stdout, "FAIL case 2: SPLIT_MISMATCH\n")
	assert.Contains(t, stdout, "0 passed, 2 failed\n")
}

func TestBatchJSONAcceptsNumbers(t *testing.T) {
	path := writeFile(t, "cases.json", `[
		{"s": "ab", "x": "", "y": "a", "z": "b", "i": 2, "p": 2, "expect": "member"},
		{"s": "ab", "x": "", "y": "a", "z": "b", "i": -1, "p": 2, "expect": "invalid_pumping_factor"}
	]`)

	code, stdout, _ := runBatch(t, path, 4)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "PASS case 1\n")
	assert.Contains(t, stdout, "Pumped String (i=2): aab\n")
	assert.Contains(t, stdout, "PASS case 2\n")
}

func TestBatchNullKeysAreEmptyFields(t *testing.T) {
	yamlPath := writeFile(t, "cases.yaml", `
- name: bare keys
  s: ab
  x:
  y: ab
  z: null
  i: 1
  p: 2
  expect: member
- name: left out
  s: ab
  y: ab
  z:
  i: 1
  p: 2
  expect: MISSING_SPLIT_COMPONENT
`)
	code, stdout, _ := runBatch(t, yamlPath, 1)
	assert.Equal(t, exitOK, code, stdout)
	assert.Contains(t, stdout, "2 passed, 0 failed\n")

	jsonPath := writeFile(t, "cases.json", `[
		{"name": "json null", "s": "ab", "x": null, "y": "ab", "z": null, "i": 1, "p": 2, "expect": "member"}
	]`)
	code, stdout, _ = runBatch(t, jsonPath, 1)
	assert.Equal(t, exitOK, code, stdout)
	assert.Contains(t, stdout, "PASS json null\n")
}

func TestBatchHugeFactorIsRejected(t *testing.T) {
	path := writeFile(t, "cases.yaml", `
- s: ab
  x: ""
  y: ab
  z: ""
  i: 9223372036854775807
  p: 5
  expect: INVALID_PUMPING_FACTOR
`)
	code, stdout, _ := runBatch(t, path, 1)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "Invalid Input: i is too large")
}

func TestBatchRejectsNonScalarField(t *testing.T) {
	path := writeFile(t, "cases.yaml", "- s: [a, b]\n")

	code, _, stderr := runBatch(t, path, 1)
	assert.Equal(t, exitUsageError, code)
	assert.Contains(t, stderr, errors.CodeBatchLoad)
}

func TestEvaluateAllKeepsOrder(t *testing.T) {
	var cases []batchCase
	for i := 0; i < 40; i++ {
		s := scalar(strings.Repeat("a", i+1))
		x, y := scalar(""), scalar("a")
		z := scalar(strings.Repeat("a", i))
		n, p := scalar(fmt.Sprint(i)), scalar("1")
		cases = append(cases, batchCase{Name: fmt.Sprint(i), S: &s, X: &x, Y: &y, Z: &z, I: &n, P: &p})
	}

	results, err := evaluateAll(context.Background(), cases, 8)
	require.NoError(t, err)
	require.Len(t, results, len(cases))
	for i, result := range results {
		assert.Equal(t, fmt.Sprint(i), result.Name)
		assert.NoError(t, result.Err)
		assert.Equal(t, strings.Repeat("a", 2*i), result.Outcome.Pumped)
		assert.True(t, result.Passed)
	}
}
