package lemma

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"pumpterm/errors"
)

// EvaluationOutcome is the result of one pumping request.
type EvaluationOutcome struct {
	Original               string `json:"original" yaml:"original"`
	X                      string `json:"x" yaml:"x"`
	Y                      string `json:"y" yaml:"y"`
	Z                      string `json:"z" yaml:"z"`
	I                      int    `json:"i" yaml:"i"`
	P                      int    `json:"p" yaml:"p"`
	Pumped                 string `json:"pumped" yaml:"pumped"`
	Language               string `json:"language" yaml:"language"`
	InLanguage             bool   `json:"in_language" yaml:"in_language"`
	LanguageWasUnspecified bool   `json:"language_was_unspecified" yaml:"language_was_unspecified"`
}

// Evaluate pumps validated inputs and tests the result for membership.
func Evaluate(in PumpingInputs) EvaluationOutcome {
	pumped := Pump(in.X, in.Y, in.Z, in.I)
	return EvaluationOutcome{
		Original:               in.S,
		X:                      in.X,
		Y:                      in.Y,
		Z:                      in.Z,
		I:                      in.I,
		P:                      in.P,
		Pumped:                 pumped,
		Language:               in.Language,
		InLanguage:             IsMember(in.Language, pumped),
		LanguageWasUnspecified: ParseLanguage(in.Language) == Unconstrained,
	}
}

// ValidateAndPump validates raw and evaluates it. On a validation failure
// the outcome is empty and err is the first failing check.
func ValidateAndPump(raw RawInputs) (EvaluationOutcome, error) {
	in, err := Validate(raw)
	if err != nil {
		return EvaluationOutcome{}, err
	}
	return Evaluate(in), nil
}

// MaxSweep is the largest number of factors a single Sweep evaluates.
const MaxSweep = 64

// Sweep evaluates in for every pumping factor from..to inclusive, ignoring
// in.I. The range must satisfy 0 ≤ from ≤ to with at most MaxSweep values,
// and the pumped string for to must fit MaxPumpedLength.
func Sweep(in PumpingInputs, from, to int) ([]EvaluationOutcome, error) {
	if from < 0 || from > to {
		return nil, errors.NewValidationError(errors.CodeInvalidPumpingFactor,
			"The sweep range must satisfy 0 ≤ from ≤ to.").
			WithContext("from", from).
			WithContext("to", to)
	}
	// to-from cannot overflow once both are non-negative.
	count := to - from
	if count >= MaxSweep {
		return nil, errors.NewValidationError(errors.CodeInvalidPumpingFactor,
			fmt.Sprintf("A sweep covers at most %d values of i.", MaxSweep)).
			WithContext("from", from).
			WithContext("to", to)
	}
	if err := checkPumpedLength(in.X, in.Y, in.Z, to); err != nil {
		return nil, err
	}

	outcomes := make([]EvaluationOutcome, 0, count+1)
	for n := 0; n <= count; n++ {
		in.I = from + n
		outcomes = append(outcomes, Evaluate(in))
	}
	return outcomes, nil
}

// Split is one decomposition s = X·Y·Z.
type Split struct {
	X string `json:"x" yaml:"x"`
	Y string `json:"y" yaml:"y"`
	Z string `json:"z" yaml:"z"`
}

// Splits lists every decomposition of s with |y| ≥ 1 and |xy| ≤ p, ordered
// by the length of x and then of y. Lengths count characters.
func Splits(s string, p int) []Split {
	// Byte offsets of every character boundary, including len(s).
	bounds := make([]int, 0, utf8.RuneCountInString(s)+1)
	for off := range s {
		bounds = append(bounds, off)
	}
	bounds = append(bounds, len(s))

	var splits []Split
	for xi := 0; xi < len(bounds); xi++ {
		for yi := xi + 1; yi < len(bounds) && yi <= p; yi++ {
			splits = append(splits, Split{
				X: s[:bounds[xi]],
				Y: s[bounds[xi]:bounds[yi]],
				Z: s[bounds[yi]:],
			})
		}
	}
	return splits
}

// EvaluateSplits evaluates every decomposition of raw.S permitted by raw.P
// with the pumping factor raw.I. raw.X, raw.Y and raw.Z are ignored; the
// remaining fields are checked in the same order and with the same errors
// as Validate.
func EvaluateSplits(raw RawInputs) ([]EvaluationOutcome, error) {
	p, err := parseLength(raw.P)
	if err != nil {
		return nil, err
	}
	s, err := requireString(raw.S)
	if err != nil {
		return nil, err
	}
	i, err := parseFactor(raw.I)
	if err != nil {
		return nil, err
	}

	splits := Splits(s, p)
	outcomes := make([]EvaluationOutcome, 0, len(splits))
	for _, sp := range splits {
		if err := checkPumpedLength(sp.X, sp.Y, sp.Z, i); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, Evaluate(PumpingInputs{
			S:        s,
			X:        sp.X,
			Y:        sp.Y,
			Z:        sp.Z,
			I:        i,
			P:        p,
			Language: strings.TrimSpace(raw.Language),
		}))
	}
	return outcomes, nil
}
