package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"pumpterm/errors"
	"pumpterm/logging"
	"pumpterm/render"
)

// REPL is the interactive pumping lemma terminal. It owns a Form and turns
// each input line into an assignment or a command.
type REPL struct {
	prompt         string
	historyFile    string
	historySize    int
	showWelcome    bool
	running        bool
	form           *Form
	renderers      *render.Registry
	renderer       render.Renderer
	errorHandler   errors.ErrorHandler
	logger         logging.Logger
	displayManager *DisplayManager
	commands       map[string]CommandHandler
	out            io.Writer
}

// REPLConfig contains configuration for the REPL
type REPLConfig struct {
	Prompt      string // Main prompt (default: "pump> ")
	HistoryFile string // History file path; empty disables history
	HistorySize int    // Maximum history size (default: 500)
	ShowWelcome bool
	Colors      bool

	// DefaultPumpingLength and DefaultLanguage seed the form and are
	// restored by :reset.
	DefaultPumpingLength string
	DefaultLanguage      string

	// Format names the initial renderer (default: the registry default)
	Format string

	Renderers    *render.Registry
	ErrorHandler errors.ErrorHandler
	Logger       logging.Logger
	Output       io.Writer
}

// NewREPL creates a new REPL instance with configuration
func NewREPL(config REPLConfig) (*REPL, error) {
	prompt := config.Prompt
	if prompt == "" {
		prompt = "pump> "
	}
	historySize := config.HistorySize
	if historySize == 0 {
		historySize = 500
	}

	renderers := config.Renderers
	if renderers == nil {
		renderers = render.NewDefaultRegistry()
	}
	if config.Colors {
		if text, err := renderers.Get("text"); err == nil {
			if tr, ok := text.(*render.TextRenderer); ok {
				tr.Colors = true
			}
		}
	}

	// An empty format falls back to the registry's default renderer
	var renderer render.Renderer
	var err error
	if config.Format == "" {
		renderer, err = renderers.Default()
	} else {
		renderer, err = renderers.Get(config.Format)
	}
	if err != nil {
		return nil, err
	}

	handler := config.ErrorHandler
	if handler == nil {
		handler = errors.NewDefaultErrorHandler()
	}

	logger := config.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	out := config.Output
	if out == nil {
		out = os.Stdout
	}

	r := &REPL{
		prompt:         prompt,
		historyFile:    config.HistoryFile,
		historySize:    historySize,
		showWelcome:    config.ShowWelcome,
		form:           NewForm(config.DefaultPumpingLength, config.DefaultLanguage),
		renderers:      renderers,
		renderer:       renderer,
		errorHandler:   handler,
		logger:         logger.WithComponent("repl"),
		displayManager: NewDisplayManager(config.Colors),
		out:            out,
	}
	r.registerCommands()

	return r, nil
}

// Form returns the session's form
func (r *REPL) Form() *Form {
	return r.form
}

// isInteractive checks if the input is interactive (terminal) or piped
func (r *REPL) isInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// Run starts the REPL loop on stdin
func (r *REPL) Run() error {
	if r.isInteractive() {
		return r.runInteractive()
	}
	return r.RunReader(os.Stdin)
}

// runInteractive runs the REPL with readline line editing and completion
func (r *REPL) runInteractive() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.displayManager.FormatPrompt(r.prompt),
		HistoryFile:     expandHome(r.historyFile),
		HistoryLimit:    r.historySize,
		InterruptPrompt: "^C",
		EOFPrompt:       ":exit",
		AutoComplete:    r.newCompleter(),
	})
	if err != nil {
		return errors.WrapError(err, errors.CodeReadlineInit, "failed to initialize readline")
	}
	defer func() {
		if err := rl.Close(); err != nil {
			r.logger.WithError(err).Warn("failed to close readline")
		}
	}()

	if r.showWelcome {
		r.displayManager.ShowWelcome(r.out)
	}

	r.running = true
	for r.running {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(input) == 0 {
					fmt.Fprintln(r.out, "Goodbye!")
					break
				}
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(r.out, "Goodbye!")
				break
			}
			return errors.WrapError(err, "READ_ERROR", "read error")
		}

		if err := r.handleLine(input); err != nil {
			return err
		}
	}

	return nil
}

// RunReader executes every line of in, as when stdin is piped
func (r *REPL) RunReader(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	r.running = true
	for r.running && scanner.Scan() {
		if err := r.handleLine(scanner.Text()); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.WrapError(err, "STDIN_READ_ERROR", "error reading input")
	}
	return nil
}

// handleLine executes one line and reports its error. It returns the error
// only when the session should end.
func (r *REPL) handleLine(line string) error {
	err := r.Execute(line)
	if err == nil {
		return nil
	}

	r.logger.LogError(err)
	r.displayError(err)

	strategy := r.errorHandler.Recover(context.Background(), err)
	if strategy.Action == errors.RecoveryActionAbort {
		r.running = false
		return err
	}
	return nil
}

// Execute processes a single input line: blank lines and # comments are
// ignored, lines starting with ':' are commands and name = value lines are
// assignments.
func (r *REPL) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	if strings.HasPrefix(line, ":") {
		return r.executeCommand(line)
	}

	if name, value, ok := strings.Cut(line, "="); ok {
		return r.form.Set(name, value)
	}

	return errors.NewUserError(errors.CodeInvalidSyntax,
		fmt.Sprintf("Cannot interpret '%s'. Assign a field with name = value or type :help.", line))
}

// displayError renders err with the current renderer
func (r *REPL) displayError(err error) {
	data, rerr := r.renderer.RenderError(err)
	if rerr != nil {
		fmt.Fprintf(r.out, "Error: %s\n", errors.MessageOf(err))
		return
	}
	r.write(data)
}

// write sends rendered output to the session's writer
func (r *REPL) write(data []byte) {
	if _, err := r.out.Write(data); err != nil {
		r.logger.LogError(errors.WrapError(err, errors.CodeOutputWrite, "failed to write output"))
	}
}

// expandHome expands ~ to the user's home directory
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	}
	return path
}
