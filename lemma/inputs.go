package lemma

import "strings"

// Field is an optional raw text value. The zero value is an absent field,
// which is distinct from a field that was supplied empty.
type Field struct {
	text string
	set  bool
}

// Text returns a present field holding v. v may be empty.
func Text(v string) Field {
	return Field{text: v, set: true}
}

// Optional returns a present field for a non-nil v and an absent one otherwise.
func Optional(v *string) Field {
	if v == nil {
		return Field{}
	}
	return Text(*v)
}

// Present reports whether the field was supplied.
func (f Field) Present() bool { return f.set }

// Value returns the raw text, or "" for an absent field.
func (f Field) Value() string { return f.text }

// Trimmed returns the text with surrounding whitespace removed.
func (f Field) Trimmed() string { return strings.TrimSpace(f.text) }

// RawInputs holds the caller-supplied fields of one evaluation request,
// exactly as entered.
type RawInputs struct {
	S, X, Y, Z Field
	// I is the pumping factor, P the pumping length; both unparsed.
	I, P     Field
	Language string
}

// PumpingInputs is a validated request. X+Y+Z equals S, Y is non-empty and
// len(X)+len(Y) is at most P. Values are trimmed.
type PumpingInputs struct {
	S        string
	X        string
	Y        string
	Z        string
	I        int
	P        int
	Language string
}
