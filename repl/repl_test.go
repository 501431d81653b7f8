package repl

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpterm/errors"
	"pumpterm/lemma"
	"pumpterm/render"
)

func newTestREPL(t *testing.T) (*REPL, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r, err := NewREPL(REPLConfig{DefaultPumpingLength: "5", Output: &out})
	require.NoError(t, err)
	return r, &out
}

func run(t *testing.T, r *REPL, script string) {
	t.Helper()
	require.NoError(t, r.RunReader(strings.NewReader(script)))
}

func TestPumpNotInLanguage(t *testing.T) {
	r, out := newTestREPL(t)

	run(t, r, `
s = aabb
x = a
y = a
z = bb
i = 2
p = 4
lang = a^n b^n
:pump
`)

	assert.Equal(t, "Original String: aabb\n"+
		"Split as: x='a', y='a', z='bb'\n"+
		"Pumped String (i=2): aaabb\n"+
		"Belongs to Language: ❌ No\n", out.String())
}

func TestPumpWithInlineArguments(t *testing.T) {
	r, out := newTestREPL(t)

	run(t, r, `:pump s=ab x="" y=ab z= i=3 p=2`)

	assert.Contains(t, out.String(), "Pumped String (i=3): ababab\n")
	assert.Contains(t, out.String(), "Belongs to Language: ✅ Yes\n")
	assert.Contains(t, out.String(), "Note: No language specified")
}

func TestQuotedLanguageArgument(t *testing.T) {
	r, out := newTestREPL(t)

	run(t, r, `:pump s=aabbcc x=a y=a z=bbcc i=1 lang="a^n b^n c^n"`)

	assert.Contains(t, out.String(), "Belongs to Language: ✅ Yes\n")
	assert.Equal(t, "a^n b^n c^n", r.Form().Get("lang").Value())
}

func TestValidationErrorKeepsSessionRunning(t *testing.T) {
	r, out := newTestREPL(t)

	run(t, r, `
:pump s=ab x=a y=b z=c i=1
:pump z=
`)

	assert.Equal(t, "Invalid Input: Ensure that x + y + z equals the original string s.\n"+
		"Original String: ab\n"+
		"Split as: x='a', y='b', z=''\n"+
		"Pumped String (i=1): ab\n"+
		"Belongs to Language: ✅ Yes\n"+
		"\nNote: No language specified - result assumes all strings are valid.\n", out.String())
}

func TestAbsentFieldVersusEmptyField(t *testing.T) {
	r, out := newTestREPL(t)

	run(t, r, `
s = ab
y = ab
z =
i = 1
:pump
x = ""
:pump
`)

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "Invalid Input: Please enter values for x, y, and z.", lines[0])
	assert.Equal(t, "Original String: ab", lines[1])
}

func TestUnsetAndReset(t *testing.T) {
	r, out := newTestREPL(t)

	run(t, r, `
s = ab
p = 9
:unset s
:show
:reset
`)

	assert.False(t, r.Form().Get("s").Present())
	assert.Equal(t, "5", r.Form().Get("p").Value())
	assert.Contains(t, out.String(), "  s    (not set)\n")
	assert.Contains(t, out.String(), "  p    \"9\"\n")
	assert.Contains(t, out.String(), "Fields cleared.\n")
}

func TestSweep(t *testing.T) {
	r, out := newTestREPL(t)

	run(t, r, `
s = aabb
x = a
y = ab
z = b
p = 3
lang = a^n b^n
:sweep 0 2
`)

	assert.Equal(t, "x='a' y='ab' z='b' i=0: ab -> ✅ Yes\n"+
		"x='a' y='ab' z='b' i=1: aabb -> ✅ Yes\n"+
		"x='a' y='ab' z='b' i=2: aababb -> ❌ No\n", out.String())
}

func TestSweepRejectsBadRange(t *testing.T) {
	r, _ := newTestREPL(t)

	for _, line := range []string{":sweep", ":sweep 3 1", ":sweep a b", ":sweep 0 1000", ":sweep 0 64",
		":sweep 0 9223372036854775807", ":sweep 9223372036854775806 9223372036854775807"} {
		err := r.Execute(line)
		assert.True(t, errors.HasCode(err, errors.CodeInvalidSyntax), line)
	}
}

func TestHugeFactorKeepsSessionRunning(t *testing.T) {
	r, out := newTestREPL(t)

	run(t, r, `
s = ab
x =
y = ab
z =
i = 9223372036854775807
:pump
i = 2
:sweep 0 63
:sweep 1048000 1048010
:show
`)

	assert.Contains(t, out.String(), "Invalid Input: i is too large")
	assert.Contains(t, out.String(), "i=63: "+strings.Repeat("ab", 63)+" -> ✅ Yes\n")
	assert.Contains(t, out.String(), "  s    \"ab\"\n")
}

func TestRegistryDefaultSelectsRenderer(t *testing.T) {
	registry := render.NewDefaultRegistry()
	require.NoError(t, registry.SetDefault("yaml"))

	var out bytes.Buffer
	r, err := NewREPL(REPLConfig{DefaultPumpingLength: "5", Renderers: registry, Output: &out})
	require.NoError(t, err)

	run(t, r, ":pump s=ab x= y=a z=b i=1\n")
	assert.Contains(t, out.String(), "pumped: ab\n")
}

func TestSplitsInJSON(t *testing.T) {
	r, out := newTestREPL(t)

	run(t, r, `
:format json
:splits s=ab p=2 i=0 lang=palindromes
`)

	var outcomes []lemma.EvaluationOutcome
	require.NoError(t, json.Unmarshal(out.Bytes(), &outcomes))
	require.Len(t, outcomes, 3)
	assert.Equal(t, "b", outcomes[0].Pumped)
	assert.True(t, outcomes[0].InLanguage)
	assert.Equal(t, "", outcomes[1].Pumped)
	assert.Equal(t, "a", outcomes[2].Pumped)
}

func TestFormatSwitching(t *testing.T) {
	r, out := newTestREPL(t)

	run(t, r, ":format yaml\n:pump s=ab x=a y=b z= i=0\n")
	assert.Contains(t, out.String(), "pumped: a\n")

	out.Reset()
	require.NoError(t, r.Execute(":format"))
	assert.Equal(t, "Output format: yaml (available: json, text, yaml)\n", out.String())

	assert.True(t, errors.HasCode(r.Execute(":format xml"), errors.CodeUnknownFormat))
}

func TestUserErrors(t *testing.T) {
	r, _ := newTestREPL(t)

	assert.True(t, errors.HasCode(r.Execute(":frobnicate"), errors.CodeUnknownCommand))
	assert.True(t, errors.HasCode(r.Execute("w = 1"), errors.CodeUnknownField))
	assert.True(t, errors.HasCode(r.Execute("pump it"), errors.CodeInvalidSyntax))
	assert.True(t, errors.HasCode(r.Execute(`:pump lang="a^n`), errors.CodeInvalidSyntax))
	assert.True(t, errors.HasCode(r.Execute(":pump s"), errors.CodeInvalidSyntax))
	assert.True(t, errors.HasCode(r.Execute(":unset"), errors.CodeInvalidSyntax))
	assert.NoError(t, r.Execute("# a comment"))
	assert.NoError(t, r.Execute("   "))
}

func TestExitStopsReading(t *testing.T) {
	r, out := newTestREPL(t)

	run(t, r, ":exit\n:pump s=ab x=a y=b z= i=1\n")
	assert.Empty(t, out.String())
}

func TestHelpAndLanguages(t *testing.T) {
	r, out := newTestREPL(t)

	run(t, r, ":help\n:langs\n")
	assert.Contains(t, out.String(), ":sweep FROM TO")
	assert.Contains(t, out.String(), "a^n b^n c^n")
	assert.Contains(t, out.String(), "palindromes")
}

func TestSplitArgs(t *testing.T) {
	args, err := splitArgs(`:pump  s=aabb lang='a^n b^n' x="" `)
	require.NoError(t, err)
	assert.Equal(t, []string{":pump", "s=aabb", "lang=a^n b^n", "x="}, args)
}

func TestNewREPLRejectsUnknownFormat(t *testing.T) {
	_, err := NewREPL(REPLConfig{Format: "csv"})
	assert.True(t, errors.HasCode(err, errors.CodeUnknownFormat))
}

func TestCompleterCoversCommands(t *testing.T) {
	r, _ := newTestREPL(t)
	assert.NotNil(t, r.newCompleter())
	assert.Contains(t, r.CommandNames(), ":splits")
}
