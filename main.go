package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"pumpterm/errors"
	"pumpterm/lemma"
	"pumpterm/logging"
	"pumpterm/render"
	"pumpterm/repl"
)

const version = "pumpterm v0.1.0 - Pumping Lemma Demonstrator"

// Exit codes
const (
	exitOK         = 0
	exitRejected   = 1 // validation failure or failed batch expectation
	exitUsageError = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args and dispatches to one-shot, batch or interactive mode.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pumpterm", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath  = fs.String("config", "", "Path to configuration file")
		showVersion = fs.Bool("version", false, "Show version information")
		showHelp    = fs.Bool("help", false, "Show help information")
		verbose     = fs.Bool("verbose", false, "Enable debug logging")
		format      = fs.String("format", "", "Output format (text, json, yaml)")
		batchFile   = fs.String("batch", "", "Evaluate the cases in a YAML or JSON file")
		initConfig  = fs.String("init-config", "", "Write the default configuration to a file and exit")

		// One-shot evaluation flags
		s      = fs.String("s", "", "The string s")
		x      = fs.String("x", "", "Prefix x")
		y      = fs.String("y", "", "Pumped segment y")
		z      = fs.String("z", "", "Suffix z")
		i      = fs.String("i", "", "Pumping factor i")
		p      = fs.String("p", "", "Pumping length p")
		lang   = fs.String("lang", "", "Language (a^n b^n, a^n b^n c^n, palindromes)")
		splits = fs.Bool("splits", false, "With -s, evaluate every decomposition allowed by -p")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsageError
	}

	if *showHelp {
		printHelp(stdout)
		return exitOK
	}

	if *showVersion {
		fmt.Fprintln(stdout, version)
		return exitOK
	}

	if *initConfig != "" {
		if err := SaveConfig(DefaultConfig(), *initConfig); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsageError
		}
		fmt.Fprintf(stdout, "Wrote default configuration to %s\n", *initConfig)
		return exitOK
	}

	cfg, err := LoadConfig(ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return exitUsageError
	}

	// Override config with command line flags
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	if *format != "" {
		cfg.Output.Format = *format
	}

	logger, err := logging.New(cfg.LoggerSettings())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsageError
	}
	defer logger.Close()
	logger.Debug("configuration loaded", logging.StringField("config", cfg.String()))

	renderers := render.NewDefaultRegistry()
	if err := renderers.SetDefault(cfg.Output.Format); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", errors.MessageOf(err))
		return exitUsageError
	}
	renderer, err := renderers.Default()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", errors.MessageOf(err))
		return exitUsageError
	}

	// Collect the one-shot fields that were actually given.
	supplied := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { supplied[f.Name] = true })
	field := func(name string, value *string) lemma.Field {
		if supplied[name] {
			return lemma.Text(*value)
		}
		return lemma.Field{}
	}

	switch {
	case *batchFile != "":
		return runBatchFile(*batchFile, cfg.Batch.Workers, renderer, logger, stdout, stderr)

	case supplied["s"]:
		raw := lemma.RawInputs{
			S:        field("s", s),
			X:        field("x", x),
			Y:        field("y", y),
			Z:        field("z", z),
			I:        field("i", i),
			P:        field("p", p),
			Language: *lang,
		}
		if !supplied["p"] {
			raw.P = lemma.Text(cfg.Defaults.PumpingLength)
		}
		if !supplied["lang"] {
			raw.Language = cfg.Defaults.Language
		}
		return runOneShot(raw, *splits, renderer, logger, stdout, stderr)
	}

	replInstance, err := repl.NewREPL(repl.REPLConfig{
		Prompt:               cfg.REPL.Prompt,
		HistoryFile:          cfg.REPL.HistoryFile,
		HistorySize:          cfg.REPL.HistorySize,
		ShowWelcome:          cfg.REPL.ShowWelcome,
		Colors:               cfg.REPL.Colors,
		DefaultPumpingLength: cfg.Defaults.PumpingLength,
		DefaultLanguage:      cfg.Defaults.Language,
		Format:               cfg.Output.Format,
		Renderers:            renderers,
		ErrorHandler:         errors.NewDefaultErrorHandler(),
		Logger:               logger,
		Output:               stdout,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", errors.MessageOf(err))
		return exitUsageError
	}

	if err := replInstance.Run(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsageError
	}
	return exitOK
}

// runOneShot evaluates a single request given on the command line
func runOneShot(raw lemma.RawInputs, splits bool, renderer render.Renderer, logger logging.Logger, stdout, stderr io.Writer) int {
	var (
		data []byte
		err  error
	)

	if splits {
		var outcomes []lemma.EvaluationOutcome
		outcomes, err = lemma.EvaluateSplits(raw)
		if err == nil {
			data, err = renderer.RenderOutcomes(outcomes)
		}
	} else {
		var outcome lemma.EvaluationOutcome
		outcome, err = lemma.ValidateAndPump(raw)
		if err == nil {
			data, err = renderer.RenderOutcome(outcome)
		}
	}

	if err != nil {
		return reportError(err, renderer, logger, stdout, stderr)
	}

	if _, err := stdout.Write(data); err != nil {
		return reportError(errors.WrapError(err, errors.CodeOutputWrite, "failed to write output"),
			renderer, logger, stdout, stderr)
	}
	return exitOK
}

// reportError renders err and maps it to an exit code. Rejected input is
// rendered to stdout like any other result; system failures go to stderr.
func reportError(err error, renderer render.Renderer, logger logging.Logger, stdout, stderr io.Writer) int {
	logger.LogError(err)

	strategy := errors.NewDefaultErrorHandler().Recover(context.Background(), err)
	if strategy.Action == errors.RecoveryActionAbort {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsageError
	}

	if data, rerr := renderer.RenderError(err); rerr == nil {
		_, _ = stdout.Write(data)
	} else {
		fmt.Fprintf(stdout, "Invalid Input: %s\n", errors.MessageOf(err))
	}
	return exitRejected
}

// printHelp displays help information
func printHelp(w io.Writer) {
	fmt.Fprintln(w, version)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  pumpterm [options]                       Interactive terminal")
	fmt.Fprintln(w, "  pumpterm -s S -x X -y Y -z Z -i I [-p P] [-lang L]")
	fmt.Fprintln(w, "                                           Evaluate one decomposition")
	fmt.Fprintln(w, "  pumpterm -s S -i I [-p P] [-lang L] -splits")
	fmt.Fprintln(w, "                                           Evaluate every decomposition")
	fmt.Fprintln(w, "  pumpterm -batch cases.yaml               Evaluate a file of cases")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -config <path>        Path to configuration file")
	fmt.Fprintln(w, "  -format <name>        Output format: text, json, yaml")
	fmt.Fprintln(w, "  -init-config <path>   Write the default configuration and exit")
	fmt.Fprintln(w, "  -verbose              Enable debug logging")
	fmt.Fprintln(w, "  -version              Show version information")
	fmt.Fprintln(w, "  -help                 Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Languages: a^n b^n, a^n b^n c^n, palindromes (anything else accepts every string)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration files are searched in the following order:")
	fmt.Fprintln(w, "  1. Path specified by -config flag")
	fmt.Fprintln(w, "  2. Path specified by PUMPTERM_CONFIG environment variable")
	fmt.Fprintln(w, "  3. Default locations: ~/.pumpterm/config.yaml, ./config.yaml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status: 0 success, 1 rejected input or failed expectation, 2 usage or system error")
}
