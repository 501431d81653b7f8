package render

import (
	"fmt"
	"strings"

	"pumpterm/errors"
	"pumpterm/lemma"
)

const unspecifiedNote = "Note: No language specified - result assumes all strings are valid."

// TextRenderer formats results as human-readable lines
type TextRenderer struct {
	// Colors wraps verdicts and errors in ANSI color codes
	Colors bool
}

// NewTextRenderer creates a new text renderer without colors
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// RenderOutcome formats a single outcome
func (r *TextRenderer) RenderOutcome(outcome lemma.EvaluationOutcome) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Original String: %s\n", outcome.Original)
	fmt.Fprintf(&b, "Split as: x='%s', y='%s', z='%s'\n", outcome.X, outcome.Y, outcome.Z)
	fmt.Fprintf(&b, "Pumped String (i=%d): %s\n", outcome.I, outcome.Pumped)
	fmt.Fprintf(&b, "Belongs to Language: %s\n", r.verdict(outcome.InLanguage))

	if outcome.LanguageWasUnspecified {
		b.WriteString("\n" + unspecifiedNote + "\n")
	}

	return []byte(b.String()), nil
}

// RenderOutcomes formats one line per outcome
func (r *TextRenderer) RenderOutcomes(outcomes []lemma.EvaluationOutcome) ([]byte, error) {
	var b strings.Builder

	unspecified := false
	for _, o := range outcomes {
		fmt.Fprintf(&b, "x='%s' y='%s' z='%s' i=%d: %s -> %s\n",
			o.X, o.Y, o.Z, o.I, o.Pumped, r.verdict(o.InLanguage))
		unspecified = unspecified || o.LanguageWasUnspecified
	}

	if len(outcomes) == 0 {
		b.WriteString("(no results)\n")
	}
	if unspecified {
		b.WriteString("\n" + unspecifiedNote + "\n")
	}

	return []byte(b.String()), nil
}

// RenderError formats the error message on one line
func (r *TextRenderer) RenderError(err error) ([]byte, error) {
	msg := "Invalid Input: " + errors.MessageOf(err)
	if r.Colors {
		msg = "\033[31m" + msg + "\033[0m"
	}
	return []byte(msg + "\n"), nil
}

// GetName returns the name of the renderer
func (r *TextRenderer) GetName() string {
	return "text"
}

func (r *TextRenderer) verdict(in bool) string {
	switch {
	case in && r.Colors:
		return "\033[32m✅ Yes\033[0m"
	case in:
		return "✅ Yes"
	case r.Colors:
		return "\033[31m❌ No\033[0m"
	default:
		return "❌ No"
	}
}
