package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/utils/logging"
	"github.com/secmon-lab/guardian/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// Logger configures the process wide logger. The root command owns it so
// every subcommand shares one output.
type Logger struct {
	level      string
	format     string
	output     string
	quiet      bool
	stacktrace bool
}

const logCategory = "Logging"

func (x *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Aliases:     []string{"l"},
			Usage:       "Log level [debug|info|warn|error]",
			Category:    logCategory,
			Value:       "info",
			Sources:     cli.EnvVars("GUARDIAN_LOG_LEVEL"),
			Destination: &x.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Aliases:     []string{"f"},
			Usage:       "Log format [console|json]",
			Category:    logCategory,
			Value:       "console",
			Sources:     cli.EnvVars("GUARDIAN_LOG_FORMAT"),
			Destination: &x.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Aliases:     []string{"o"},
			Usage:       "Log destination: stdout, stderr, '-' or a file path (appended)",
			Category:    logCategory,
			Value:       "stdout",
			Sources:     cli.EnvVars("GUARDIAN_LOG_OUTPUT"),
			Destination: &x.output,
		},
		&cli.BoolFlag{
			Name:        "log-quiet",
			Aliases:     []string{"q"},
			Usage:       "Discard all log output",
			Category:    logCategory,
			Sources:     cli.EnvVars("GUARDIAN_LOG_QUIET"),
			Destination: &x.quiet,
		},
		&cli.BoolFlag{
			Name:        "log-stacktrace",
			Aliases:     []string{"s"},
			Usage:       "Print goerr stack traces in console format",
			Category:    logCategory,
			Value:       true,
			Sources:     cli.EnvVars("GUARDIAN_LOG_STACKTRACE"),
			Destination: &x.stacktrace,
		},
	}
}

func (x Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", x.level),
		slog.String("format", x.format),
		slog.String("output", x.output),
		slog.Bool("quiet", x.quiet),
	)
}

// Configure installs the default logger. The returned closer is always
// callable, also when err is not nil.
func (x *Logger) Configure() (func(), error) {
	nop := func() {}

	if x.quiet {
		logging.Quiet()
		return nop, nil
	}

	format, err := logging.ParseFormat(x.format)
	if err != nil {
		return nop, err
	}
	level, err := logging.ParseLevel(x.level)
	if err != nil {
		return nop, err
	}

	w, closer, err := openLogOutput(x.output)
	if err != nil {
		return nop, err
	}

	logging.SetDefault(logging.New(w, level, format, x.stacktrace))
	return closer, nil
}

func openLogOutput(output string) (io.Writer, func(), error) {
	switch output {
	case "", "stdout", "-":
		return os.Stdout, func() {}, nil
	case "stderr":
		return os.Stderr, func() {}, nil
	}

	path := filepath.Clean(output)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to open log file", goerr.V("path", path))
	}
	return f, func() { safe.Close(context.Background(), f) }, nil
}
