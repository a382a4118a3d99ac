package logging

import (
	"cmp"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/tabmatch/pkg/constants"
)

// Config describes where and how tabmatch writes its logs.
type Config struct {
	// Level is one of trace, debug, info, warn, error or off.
	Level string

	// Format is json, console or auto. Auto picks console on a terminal.
	Format string

	// Output is stderr, stdout, discard or a file path opened for append.
	Output string

	NoColor   bool
	AddCaller bool

	// Fields are attached to every event, e.g. {"host": "planilhas-01"}.
	Fields map[string]string
}

// DefaultConfig logs info and above to stderr.
func DefaultConfig() *Config {
	return &Config{
		Level:   "info",
		Format:  "auto",
		Output:  "stderr",
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// EnvConfig reads LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT, LOG_CALLER and
// LOG_FIELDS ("k=v,k2=v2") on top of DefaultConfig. DEBUG selects the debug
// level when LOG_LEVEL is unset.
func EnvConfig() *Config {
	cfg := DefaultConfig()
	level := os.Getenv("LOG_LEVEL")
	if level == "" && os.Getenv("DEBUG") != "" {
		level = "debug"
	}
	cfg.Level = cmp.Or(level, cfg.Level)
	cfg.Format = cmp.Or(os.Getenv("LOG_FORMAT"), cfg.Format)
	cfg.Output = cmp.Or(os.Getenv("LOG_OUTPUT"), cfg.Output)
	cfg.AddCaller = os.Getenv("LOG_CALLER") == "true"
	cfg.Fields = parseFields(os.Getenv("LOG_FIELDS"))
	return cfg
}

// ConfigureFromEnv installs a default logger built from EnvConfig. The
// package runs it at init, so library callers get the same environment
// driven logging as the CLI until they call SetDefault.
func ConfigureFromEnv() {
	SetDefault(NewLoggerFromConfig(EnvConfig()))
}

// NewLoggerFromConfig builds a logger and sets the zerolog global level to
// match. Debug and trace loggers always carry the caller.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	lc := zerolog.New(writer(cfg)).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		lc = lc.Caller()
	}
	for k, v := range cfg.Fields {
		lc = lc.Str(k, v)
	}
	return lc.Logger()
}

func writer(cfg *Config) io.Writer {
	out := output(cfg.Output)

	console := false
	switch strings.ToLower(cfg.Format) {
	case "console", "pretty":
		console = true
	case "", "auto":
		console = out == os.Stderr && stderrIsTerminal()
	}
	if !console {
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: cfg.NoColor}
}

// output falls back to stderr when a log file cannot be opened.
func output(name string) io.Writer {
	switch strings.ToLower(name) {
	case "", "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	case "discard", "none":
		return io.Discard
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr
	}
	return f
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "warning":
		return zerolog.WarnLevel
	case "off", "none", "disabled":
		return zerolog.Disabled
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return l
}

func parseFields(raw string) map[string]string {
	fields := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if k = strings.TrimSpace(k); ok && k != "" {
			fields[k] = strings.TrimSpace(v)
		}
	}
	return fields
}
