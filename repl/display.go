package repl

import (
	"fmt"
	"io"

	"pumpterm/lemma"
)

// DisplayManager manages visual indicators and formatting for the REPL
type DisplayManager struct {
	useColors bool
}

// NewDisplayManager creates a new display manager
func NewDisplayManager(useColors bool) *DisplayManager {
	return &DisplayManager{
		useColors: useColors,
	}
}

// FormatPrompt formats the prompt with optional colors
func (dm *DisplayManager) FormatPrompt(text string) string {
	return dm.colorize(text, "primary")
}

// colorize wraps text in the ANSI color for kind when colors are enabled
func (dm *DisplayManager) colorize(text, kind string) string {
	if !dm.useColors {
		return text
	}

	colors := map[string]string{
		"primary": "\033[36m", // Cyan
		"muted":   "\033[90m", // Dark gray
		"heading": "\033[34m", // Blue
	}

	color, ok := colors[kind]
	if !ok {
		color = colors["primary"]
	}
	return color + text + "\033[0m"
}

// ShowWelcome displays the welcome banner
func (dm *DisplayManager) ShowWelcome(w io.Writer) {
	fmt.Fprintln(w, dm.colorize("Pumping Lemma Demonstrator", "heading"))
	fmt.Fprintln(w, "Assign fields with name = value, then run :pump.")
	fmt.Fprintln(w, "Type ':help' for available commands or ':quit' to exit")
	fmt.Fprintln(w)
}

// ShowHelp displays the command reference
func (dm *DisplayManager) ShowHelp(w io.Writer) {
	fmt.Fprintf(w, `%s
  s = aabb              set the string s
  x = a / y = a / z = bb
                        set the decomposition (x = "" sets an empty value)
  i = 2                 set the pumping factor
  p = 4                 set the pumping length
  lang = a^n b^n        set the language (empty means unconstrained)

%s
  :pump [name=value...] pump y i times and test membership
  :sweep FROM TO        pump for every i from FROM to TO
  :splits [name=value...]
                        test every decomposition with |xy| <= p and |y| >= 1
  :show                 show the current fields
  :langs                list the known languages
  :unset NAME...        make fields absent
  :reset                clear all fields
  :format [text|json|yaml]
                        show or switch the output format
  :help                 this help
  :exit, :quit          leave
`, dm.colorize("Fields:", "heading"), dm.colorize("Commands:", "heading"))
}

// ShowFields lists the form's fields in display order
func (dm *DisplayManager) ShowFields(w io.Writer, form *Form) {
	for _, name := range fieldOrder {
		field := form.Get(name)
		if !field.Present() {
			fmt.Fprintf(w, "  %-4s %s\n", name, dm.colorize("(not set)", "muted"))
			continue
		}
		fmt.Fprintf(w, "  %-4s %q\n", name, field.Value())
	}
}

// ShowLanguages lists the known languages with their descriptions
func (dm *DisplayManager) ShowLanguages(w io.Writer) {
	for _, l := range lemma.KnownLanguages() {
		fmt.Fprintf(w, "  %-12s %s\n", l.String(), l.Description())
	}
	fmt.Fprintln(w, dm.colorize("  Any other value, or none, accepts every string.", "muted"))
}
