// Package lemma implements the core of the pumping lemma explorer.
//
// A request supplies a string s, a decomposition s = x·y·z, a pumping factor i,
// a pumping length p and an optional language identifier. Validate checks the
// raw inputs in a fixed order and reports the first failure; Pump builds the
// pumped string x·y^i·z; IsMember decides membership in one of a small, closed
// set of named languages. ValidateAndPump chains the three steps and returns an
// EvaluationOutcome ready for display.
//
// Everything in this package is pure: no I/O, no shared state, no memory of
// earlier requests. Callers may invoke it from any goroutine.
package lemma
