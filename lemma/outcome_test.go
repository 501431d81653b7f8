package lemma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpterm/errors"
)

func TestPump(t *testing.T) {
	splits := []Split{{"", "ab", ""}, {"a", "a", "bb"}, {"x", "yz", "w"}, {"", "é", "b"}}
	for _, sp := range splits {
		assert.Equal(t, sp.X+sp.Z, Pump(sp.X, sp.Y, sp.Z, 0))
		assert.Equal(t, sp.X+sp.Y+sp.Z, Pump(sp.X, sp.Y, sp.Z, 1))
		assert.Equal(t, sp.X+sp.Y+sp.Y+sp.Y+sp.Z, Pump(sp.X, sp.Y, sp.Z, 3))
	}
	assert.Equal(t, "ab", Pump("a", "zz", "b", -4))
}

func TestValidateAndPumpNotInLanguage(t *testing.T) {
	out, err := ValidateAndPump(RawInputs{
		S: Text("aabb"), X: Text("a"), Y: Text("a"), Z: Text("bb"),
		I: Text("2"), P: Text("4"), Language: "a^n b^n",
	})
	require.NoError(t, err)

	assert.Equal(t, "aaabb", out.Pumped)
	assert.False(t, out.InLanguage)
	assert.False(t, out.LanguageWasUnspecified)
	assert.Equal(t, "aabb", out.Original)
}

func TestValidateAndPumpUnspecifiedLanguage(t *testing.T) {
	out, err := ValidateAndPump(RawInputs{
		S: Text("ab"), X: Text(""), Y: Text("ab"), Z: Text(""),
		I: Text("3"), P: Text("2"),
	})
	require.NoError(t, err)

	assert.Equal(t, "ababab", out.Pumped)
	assert.True(t, out.InLanguage)
	assert.True(t, out.LanguageWasUnspecified)
}

func TestValidateAndPumpUnrecognizedLanguageIsNotUnspecified(t *testing.T) {
	out, err := ValidateAndPump(RawInputs{
		S: Text("ab"), X: Text(""), Y: Text("ab"), Z: Text(""),
		I: Text("0"), P: Text("2"), Language: "primes",
	})
	require.NoError(t, err)

	assert.Equal(t, "", out.Pumped)
	assert.True(t, out.InLanguage)
	assert.False(t, out.LanguageWasUnspecified)
}

func TestValidateAndPumpReturnsValidationError(t *testing.T) {
	out, err := ValidateAndPump(raw("ab", "a", "b", "c", "1", "5"))
	assert.True(t, errors.HasCode(err, errors.CodeSplitMismatch))
	assert.Equal(t, EvaluationOutcome{}, out)
}

func TestPumpOneReproducesOriginal(t *testing.T) {
	for _, sp := range Splits("abcab", 5) {
		in, err := Validate(raw("abcab", sp.X, sp.Y, sp.Z, "1", "5"))
		require.NoError(t, err)
		assert.Equal(t, in.S, Evaluate(in).Pumped)
	}
}

func TestSweep(t *testing.T) {
	in := PumpingInputs{S: "aabb", X: "a", Y: "ab", Z: "b", I: 7, P: 3, Language: "a^n b^n"}

	outcomes, err := Sweep(in, 0, 2)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	assert.Equal(t, "ab", outcomes[0].Pumped)
	assert.True(t, outcomes[0].InLanguage)
	assert.Equal(t, "aabb", outcomes[1].Pumped)
	assert.True(t, outcomes[1].InLanguage)
	assert.Equal(t, "aababb", outcomes[2].Pumped)
	assert.False(t, outcomes[2].InLanguage)
	assert.Equal(t, 2, outcomes[2].I)

}

func TestSweepRejectsBadRanges(t *testing.T) {
	in := PumpingInputs{S: "ab", X: "", Y: "a", Z: "b", I: 1, P: 2}
	const maxInt = int(^uint(0) >> 1)

	cases := map[string][2]int{
		"reversed":            {3, 1},
		"negative start":      {-1, 1},
		"too many values":     {0, MaxSweep},
		"whole int range":     {0, maxInt},
		"ends at max int":     {maxInt - 1, maxInt},
		"pumped string large": {MaxPumpedLength, MaxPumpedLength + 1},
	}

	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			outcomes, err := Sweep(in, r[0], r[1])
			assert.Nil(t, outcomes)
			assert.True(t, errors.HasCode(err, errors.CodeInvalidPumpingFactor))
		})
	}

	outcomes, err := Sweep(in, 0, MaxSweep-1)
	require.NoError(t, err)
	assert.Len(t, outcomes, MaxSweep)
}

func TestEvaluateSplitsRejectsHugeFactor(t *testing.T) {
	_, err := EvaluateSplits(RawInputs{S: Text("ab"), I: Text("9223372036854775807"), P: Text("2")})
	assert.True(t, errors.HasCode(err, errors.CodeInvalidPumpingFactor))
}

func TestPumpDoesNotPanicOnHugeFactor(t *testing.T) {
	assert.NotPanics(t, func() {
		// y is empty so no copies are written, only the size hint is at risk.
		assert.Equal(t, "ab", Pump("a", "", "b", int(^uint(0)>>1)))
	})
}

func TestSplits(t *testing.T) {
	assert.Equal(t, []Split{
		{X: "", Y: "a", Z: "b"},
		{X: "", Y: "ab", Z: ""},
		{X: "a", Y: "b", Z: ""},
	}, Splits("ab", 2))

	assert.Equal(t, []Split{{X: "", Y: "a", Z: "bc"}}, Splits("abc", 1))
	assert.Empty(t, Splits("abc", 0))

	for _, sp := range Splits("éab", 2) {
		_, err := Validate(raw("éab", sp.X, sp.Y, sp.Z, "1", "2"))
		assert.NoError(t, err, "split %+v", sp)
	}
}

func TestEvaluateSplits(t *testing.T) {
	outcomes, err := EvaluateSplits(RawInputs{
		S: Text("aabb"), X: Text("ignored"), I: Text("2"), P: Text("2"), Language: "a^n b^n",
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	pumped := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		pumped = append(pumped, o.Pumped)
		assert.False(t, o.InLanguage, "split %q|%q|%q", o.X, o.Y, o.Z)
		assert.Equal(t, "aabb", o.Original)
	}
	assert.Equal(t, []string{"aaabb", "aaaabb", "aaabb"}, pumped)
}

func TestEvaluateSplitsErrors(t *testing.T) {
	_, err := EvaluateSplits(RawInputs{S: Text("ab"), I: Text("1"), P: Text("x")})
	assert.True(t, errors.HasCode(err, errors.CodeInvalidPumpingLength))

	_, err = EvaluateSplits(RawInputs{S: Text(" "), I: Text("1"), P: Text("2")})
	assert.True(t, errors.HasCode(err, errors.CodeMissingString))

	_, err = EvaluateSplits(RawInputs{S: Text("ab"), P: Text("2")})
	assert.True(t, errors.HasCode(err, errors.CodeInvalidPumpingFactor))
}
