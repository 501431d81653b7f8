package repl

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"pumpterm/errors"
	"pumpterm/lemma"
	"pumpterm/logging"
)

// CommandHandler handles a single ':' command. args excludes the command name.
type CommandHandler func(args []string) error

// registerCommands registers all built-in commands
func (r *REPL) registerCommands() {
	r.commands = map[string]CommandHandler{
		":pump":   r.handlePump,
		":sweep":  r.handleSweep,
		":splits": r.handleSplits,
		":show":   r.handleShow,
		":langs":  r.handleLanguages,
		":unset":  r.handleUnset,
		":reset":  r.handleReset,
		":format": r.handleFormat,
		":help":   r.handleHelp,
		":exit":   r.handleExit,
		":quit":   r.handleExit,
	}
}

// CommandNames returns the registered command names, sorted
func (r *REPL) CommandNames() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// executeCommand dispatches a ':' line
func (r *REPL) executeCommand(line string) error {
	args, err := splitArgs(line)
	if err != nil {
		return err
	}

	name := strings.ToLower(args[0])
	handler, ok := r.commands[name]
	if !ok {
		return errors.NewUserError(errors.CodeUnknownCommand,
			fmt.Sprintf("Unknown command '%s'. Type :help for available commands.", args[0])).
			WithContext("command", args[0])
	}
	return handler(args[1:])
}

// handlePump applies any name=value arguments, then validates, pumps and
// renders the outcome
func (r *REPL) handlePump(args []string) error {
	if err := r.assignAll(args); err != nil {
		return err
	}

	outcome, err := lemma.ValidateAndPump(r.form.Raw())
	if err != nil {
		return err
	}

	r.logger.Debug("pumped",
		logging.StringField("pumped", outcome.Pumped),
		logging.IntField("i", outcome.I),
		logging.StringField("language", outcome.Language),
		logging.BoolField("in_language", outcome.InLanguage))

	data, err := r.renderer.RenderOutcome(outcome)
	if err != nil {
		return err
	}
	r.write(data)
	return nil
}

// handleSweep evaluates the current decomposition for i = FROM..TO
func (r *REPL) handleSweep(args []string) error {
	if len(args) != 2 {
		return errors.NewUserError(errors.CodeInvalidSyntax, "Usage: :sweep FROM TO")
	}

	from, errFrom := strconv.Atoi(args[0])
	to, errTo := strconv.Atoi(args[1])
	if errFrom != nil || errTo != nil || from < 0 || to < from {
		return errors.NewUserError(errors.CodeInvalidSyntax,
			"FROM and TO must be integers with 0 ≤ FROM ≤ TO.")
	}
	if to-from >= lemma.MaxSweep {
		return errors.NewUserError(errors.CodeInvalidSyntax,
			fmt.Sprintf("A sweep covers at most %d values of i.", lemma.MaxSweep))
	}

	// The form's own i is replaced by the sweep range.
	raw := r.form.Raw()
	raw.I = lemma.Text(strconv.Itoa(from))
	in, err := lemma.Validate(raw)
	if err != nil {
		return err
	}

	outcomes, err := lemma.Sweep(in, from, to)
	if err != nil {
		return err
	}
	r.logger.Debug("swept", logging.IntField("from", from), logging.IntField("to", to))

	data, err := r.renderer.RenderOutcomes(outcomes)
	if err != nil {
		return err
	}
	r.write(data)
	return nil
}

// handleSplits evaluates every decomposition of s allowed by p
func (r *REPL) handleSplits(args []string) error {
	if err := r.assignAll(args); err != nil {
		return err
	}

	outcomes, err := lemma.EvaluateSplits(r.form.Raw())
	if err != nil {
		return err
	}

	data, err := r.renderer.RenderOutcomes(outcomes)
	if err != nil {
		return err
	}
	r.write(data)
	return nil
}

// handleShow lists the form fields
func (r *REPL) handleShow(args []string) error {
	r.displayManager.ShowFields(r.out, r.form)
	return nil
}

// handleLanguages lists the known languages
func (r *REPL) handleLanguages(args []string) error {
	r.displayManager.ShowLanguages(r.out)
	return nil
}

// handleUnset makes the named fields absent
func (r *REPL) handleUnset(args []string) error {
	if len(args) == 0 {
		return errors.NewUserError(errors.CodeInvalidSyntax, "Usage: :unset FIELD...")
	}
	for _, name := range args {
		if err := r.form.Unset(name); err != nil {
			return err
		}
	}
	return nil
}

// handleReset clears the form
func (r *REPL) handleReset(args []string) error {
	r.form.Reset()
	fmt.Fprintln(r.out, "Fields cleared.")
	return nil
}

// handleFormat switches the renderer
func (r *REPL) handleFormat(args []string) error {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "Output format: %s (available: %s)\n",
			r.renderer.GetName(), strings.Join(r.renderers.Names(), ", "))
		return nil
	}

	renderer, err := r.renderers.Get(args[0])
	if err != nil {
		return err
	}
	r.renderer = renderer
	return nil
}

// handleHelp displays the command reference
func (r *REPL) handleHelp(args []string) error {
	r.displayManager.ShowHelp(r.out)
	return nil
}

// handleExit ends the session
func (r *REPL) handleExit(args []string) error {
	r.running = false
	return nil
}

// assignAll applies name=value arguments to the form
func (r *REPL) assignAll(args []string) error {
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return errors.NewUserError(errors.CodeInvalidSyntax,
				fmt.Sprintf("Expected name=value, got '%s'.", arg))
		}
		if err := r.form.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

// splitArgs splits a command line on whitespace. Single or double quotes
// group words and are removed, so lang="a^n b^n" is one argument.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inWord  bool
	)

	for _, c := range line {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				current.WriteRune(c)
			}
		case c == '"' || c == '\'':
			quote = c
			inWord = true
		case unicode.IsSpace(c):
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(c)
			inWord = true
		}
	}

	if quote != 0 {
		return nil, errors.NewUserError(errors.CodeInvalidSyntax, "Unterminated quote.")
	}
	if inWord {
		args = append(args, current.String())
	}
	return args, nil
}
