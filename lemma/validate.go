package lemma

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"pumpterm/errors"
)

// Validate checks raw against the preconditions of a pumping request and
// returns the assembled PumpingInputs. Checks run in a fixed order and the
// first failure is returned as an *errors.Error carrying one of the
// validation codes.
//
// s, x, y and z are trimmed before they are compared and measured. A
// negative p is a valid integer; it fails the |xy| ≤ p check. A factor whose
// pumped string would exceed MaxPumpedLength is rejected last.
func Validate(raw RawInputs) (PumpingInputs, error) {
	p, err := parseLength(raw.P)
	if err != nil {
		return PumpingInputs{}, err
	}

	s, err := requireString(raw.S)
	if err != nil {
		return PumpingInputs{}, err
	}

	if !raw.X.Present() || !raw.Y.Present() || !raw.Z.Present() {
		return PumpingInputs{}, errors.NewValidationError(errors.CodeMissingSplitComponent,
			"Please enter values for x, y, and z.")
	}

	i, err := parseFactor(raw.I)
	if err != nil {
		return PumpingInputs{}, err
	}

	x, y, z := raw.X.Trimmed(), raw.Y.Trimmed(), raw.Z.Trimmed()
	if x+y+z != s {
		return PumpingInputs{}, errors.NewValidationError(errors.CodeSplitMismatch,
			"Ensure that x + y + z equals the original string s.").
			WithContext("concatenation", x+y+z)
	}

	if y == "" {
		return PumpingInputs{}, errors.NewValidationError(errors.CodeEmptyPumpedSegment,
			"Substring y must not be empty (|y| > 0).")
	}

	if xy := utf8.RuneCountInString(x) + utf8.RuneCountInString(y); xy > p {
		return PumpingInputs{}, errors.NewValidationError(errors.CodeXYExceedsPumpingLength,
			fmt.Sprintf("The length of xy (%d) must be ≤ pumping length p (%d).", xy, p)).
			WithContext("xy_length", xy).
			WithContext("pumping_length", p)
	}

	if err := checkPumpedLength(x, y, z, i); err != nil {
		return PumpingInputs{}, err
	}

	return PumpingInputs{
		S:        s,
		X:        x,
		Y:        y,
		Z:        z,
		I:        i,
		P:        p,
		Language: strings.TrimSpace(raw.Language),
	}, nil
}

func parseLength(f Field) (int, error) {
	p, err := strconv.Atoi(f.Trimmed())
	if err != nil {
		return 0, errors.NewValidationError(errors.CodeInvalidPumpingLength,
			"Please enter a valid integer for pumping length.").
			WithContext("pumping_length", f.Value())
	}
	return p, nil
}

func requireString(f Field) (string, error) {
	s := f.Trimmed()
	if s == "" {
		return "", errors.NewValidationError(errors.CodeMissingString,
			"Please enter a string s.")
	}
	return s, nil
}

func parseFactor(f Field) (int, error) {
	text := f.Trimmed()
	if text == "" {
		return 0, errors.NewValidationError(errors.CodeInvalidPumpingFactor,
			"Please enter a value for i.")
	}

	i, err := strconv.Atoi(text)
	if err != nil {
		return 0, errors.NewValidationError(errors.CodeInvalidPumpingFactor,
			"Please enter an integer value for i.").
			WithContext("i", f.Value())
	}
	if i < 0 {
		return 0, errors.NewValidationError(errors.CodeInvalidPumpingFactor,
			"i must be a non-negative integer.").
			WithContext("i", i)
	}
	return i, nil
}
