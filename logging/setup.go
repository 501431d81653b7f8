package logging

import "fmt"

// Settings mirrors the logging section of the application config.
type Settings struct {
	Level  string
	Format string
	File   string
}

// New builds a logger from settings. Logs go to File when set and to stderr
// otherwise.
func New(settings Settings) (*DefaultLogger, error) {
	formatter, err := NewFormatter(settings.Format)
	if err != nil {
		return nil, err
	}

	var writer Writer = NewConsoleWriter()
	if settings.File != "" {
		fw, err := NewFileWriter(settings.File)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writer = fw
	}

	return NewDefaultLoggerWithConfig(LoggerConfig{
		Level:     ParseLevel(settings.Level),
		Formatter: formatter,
		Writers:   []Writer{writer},
	}), nil
}
