package lemma

import (
	"fmt"
	"strings"

	"pumpterm/errors"
)

// MaxPumpedLength bounds, in bytes, how far pumping may grow a string.
// Requests whose pumped string would be longer are rejected by Validate,
// EvaluateSplits and Sweep.
const MaxPumpedLength = 1 << 20

// Pump returns x followed by i copies of y followed by z. i = 0 pumps down to
// x·z. A negative i is treated as 0.
func Pump(x, y, z string, i int) string {
	if i < 0 || y == "" {
		i = 0
	}

	var b strings.Builder
	if pumpedLengthFits(x, y, z, i) {
		b.Grow(len(x) + len(y)*i + len(z))
	}
	b.WriteString(x)
	for n := 0; n < i; n++ {
		b.WriteString(y)
	}
	b.WriteString(z)
	return b.String()
}

// pumpedLengthFits reports whether x·y^i·z stays within MaxPumpedLength.
// Factors of 0 and 1 never grow the input and always fit.
func pumpedLengthFits(x, y, z string, i int) bool {
	if i <= 1 || len(y) == 0 {
		return true
	}
	room := MaxPumpedLength - len(x) - len(z)
	return room > 0 && i <= room/len(y)
}

func checkPumpedLength(x, y, z string, i int) error {
	if pumpedLengthFits(x, y, z, i) {
		return nil
	}
	return errors.NewValidationError(errors.CodeInvalidPumpingFactor,
		fmt.Sprintf("i is too large: the pumped string would exceed %d bytes.", MaxPumpedLength)).
		WithContext("i", i).
		WithContext("max_length", MaxPumpedLength)
}
