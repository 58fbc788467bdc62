package logging

import (
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/clog/hooks"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
)

type Format int

const (
	FormatConsole Format = iota + 1
	FormatJSON
)

var formatNames = map[string]Format{
	"console": FormatConsole,
	"json":    FormatJSON,
}

var levelNames = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// maskedFields are struct fields and attribute keys that carry challenge
// tokens, secrets or intel API keys.
var maskedFields = []string{
	"Authorization",
	"VerificationToken",
	"verification_token",
	"TurnstileToken",
	"turnstile_token",
	"api_key",
	"x-apikey",
}

var (
	defaultLogger = slog.Default()
	loggerMutex   sync.Mutex
)

func Default() *slog.Logger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	return defaultLogger
}

func SetDefault(logger *slog.Logger) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	defaultLogger = logger
}

// Quiet discards every record.
func Quiet() {
	SetDefault(slog.New(slog.DiscardHandler))
}

// ParseFormat resolves a format name. Matching is case insensitive.
func ParseFormat(name string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(name)]; ok {
		return f, nil
	}
	return 0, goerr.New("invalid log format",
		goerr.V("format", name),
		goerr.V("choices", choices(formatNames)))
}

// ParseLevel resolves a level name. Matching is case insensitive.
func ParseLevel(name string) (slog.Level, error) {
	if l, ok := levelNames[strings.ToLower(name)]; ok {
		return l, nil
	}
	return 0, goerr.New("invalid log level",
		goerr.V("level", name),
		goerr.V("choices", choices(levelNames)))
}

func choices[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// flattenGoErr renders a goerr.Error as its values and message, without the
// stack trace.
func flattenGoErr(_ []string, attr slog.Attr) *clog.HandleAttr {
	goErr, ok := attr.Value.Any().(*goerr.Error)
	if !ok {
		return nil
	}

	attrs := []any{slog.String("cause", goErr.Error())}
	for k, v := range goErr.Values() {
		attrs = append(attrs, slog.Any(k, v))
	}
	group := slog.Group(attr.Key, attrs...)
	return &clog.HandleAttr{NewAttr: &group}
}

func newFilter() func(groups []string, a slog.Attr) slog.Attr {
	opts := []masq.Option{
		masq.WithTag("secret"),
		masq.WithFieldPrefix("secret_"),
	}
	for _, name := range maskedFields {
		opts = append(opts, masq.WithFieldName(name))
	}
	return masq.New(opts...)
}

var consoleColors = &clog.ColorMap{
	Level: map[slog.Level]*color.Color{
		slog.LevelDebug: color.New(color.FgHiBlack),
		slog.LevelInfo:  color.New(color.FgGreen, color.Bold),
		slog.LevelWarn:  color.New(color.FgYellow, color.Bold),
		slog.LevelError: color.New(color.FgRed, color.Bold),
	},
	LevelDefault: color.New(color.FgBlue),
	Time:         color.New(color.FgHiBlack),
	Message:      color.New(color.FgWhite, color.Bold),
	AttrKey:      color.New(color.FgCyan),
	AttrValue:    color.New(color.FgWhite),
}

// New builds a logger writing to w. Challenge tokens, secrets and API keys
// are masked in both formats. Unknown formats fall back to JSON.
func New(w io.Writer, level slog.Level, format Format, stacktrace bool) *slog.Logger {
	filter := newFilter()

	if format == FormatConsole {
		attrHook := hooks.GoErr()
		if !stacktrace {
			attrHook = flattenGoErr
		}
		return slog.New(clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter),
			clog.WithAttrHook(attrHook),
			clog.WithColorMap(consoleColors),
		))
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource:   true,
		Level:       level,
		ReplaceAttr: filter,
	}))
}
