package repl

import (
	"fmt"
	"sort"
	"strings"

	"pumpterm/errors"
	"pumpterm/lemma"
)

// Field names accepted by assignments and :unset, with their aliases.
var fieldAliases = map[string]string{
	"s":              "s",
	"string":         "s",
	"x":              "x",
	"y":              "y",
	"z":              "z",
	"i":              "i",
	"factor":         "i",
	"p":              "p",
	"length":         "p",
	"pumping_length": "p",
	"lang":           "lang",
	"language":       "lang",
}

// fieldOrder is the display order of :show.
var fieldOrder = []string{"s", "x", "y", "z", "i", "p", "lang"}

// Form holds the raw field values of the terminal session, the way an input
// form would. A field that was never assigned, or was unset, is absent.
type Form struct {
	fields   map[string]lemma.Field
	defaults map[string]string
}

// NewForm creates a form whose p and lang fields start at the given defaults.
// An empty default leaves the field absent.
func NewForm(defaultPumpingLength, defaultLanguage string) *Form {
	f := &Form{
		fields:   make(map[string]lemma.Field),
		defaults: make(map[string]string),
	}
	if defaultPumpingLength != "" {
		f.defaults["p"] = defaultPumpingLength
	}
	if defaultLanguage != "" {
		f.defaults["lang"] = defaultLanguage
	}
	f.Reset()
	return f
}

// canonicalField resolves a field name or alias
func canonicalField(name string) (string, error) {
	canonical, ok := fieldAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", errors.NewUserError(errors.CodeUnknownField,
			fmt.Sprintf("Unknown field '%s'. Fields: %s", name, strings.Join(fieldOrder, ", "))).
			WithContext("field", name)
	}
	return canonical, nil
}

// Set assigns value to the named field, making it present. Surrounding
// whitespace is dropped; quote the value to keep it.
func (f *Form) Set(name, value string) error {
	canonical, err := canonicalField(name)
	if err != nil {
		return err
	}
	f.fields[canonical] = lemma.Text(unquote(strings.TrimSpace(value)))
	return nil
}

// Unset makes the named field absent
func (f *Form) Unset(name string) error {
	canonical, err := canonicalField(name)
	if err != nil {
		return err
	}
	delete(f.fields, canonical)
	return nil
}

// Reset clears every field and restores the defaults
func (f *Form) Reset() {
	f.fields = make(map[string]lemma.Field)
	for name, value := range f.defaults {
		f.fields[name] = lemma.Text(value)
	}
}

// Get returns the named field; unknown names are absent
func (f *Form) Get(name string) lemma.Field {
	return f.fields[name]
}

// Raw builds a fresh request from the current field values
func (f *Form) Raw() lemma.RawInputs {
	return lemma.RawInputs{
		S:        f.fields["s"],
		X:        f.fields["x"],
		Y:        f.fields["y"],
		Z:        f.fields["z"],
		I:        f.fields["i"],
		P:        f.fields["p"],
		Language: f.fields["lang"].Value(),
	}
}

// Names returns every accepted field name and alias, sorted
func (f *Form) Names() []string {
	names := make([]string, 0, len(fieldAliases))
	for name := range fieldAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// unquote strips one pair of matching surrounding quotes, so that x = ""
// can spell an empty value explicitly
func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			return value[1 : len(value)-1]
		}
	}
	return value
}
