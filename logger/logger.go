package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

const FormatPretty = "pretty"

// Logger is a zerolog logger that takes fields as maps built with Fields.
type Logger struct {
	zl zerolog.Logger
}

var globalLogger *Logger

// Init installs the process-wide logger described by cfg. Component
// loggers returned by Get are rebuilt from it on next use.
func Init(cfg Config) {
	cfg.ApplyDefaults()
	if level, err := zerolog.ParseLevel(cfg.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	globalLogger = NewWithWriter(cfg, outputWriter(cfg.Output))
	resetComponents()
}

// NewWithWriter builds a logger from cfg that writes to out. An unknown
// level falls back to info.
func NewWithWriter(cfg Config, out io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if isConsole(cfg.Format) {
		zl = zerolog.New(consoleWriter(out, cfg.NoColor))
	} else {
		zl = zerolog.New(out)
	}
	ctx := zl.With()
	if cfg.Timestamp || isConsole(cfg.Format) {
		ctx = ctx.Timestamp()
	}
	if cfg.ServiceName != "" {
		ctx = ctx.Str(FieldService, cfg.ServiceName)
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return &Logger{zl: ctx.Logger().Level(level)}
}

// FromZerolog wraps an existing zerolog.Logger.
func FromZerolog(zl zerolog.Logger) *Logger {
	return &Logger{zl: zl}
}

// WithContext adds the trace and span IDs of the span active in ctx, so
// log lines can be matched to the run span.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return l
	}
	return &Logger{zl: l.zl.With().
		Str(FieldTraceID, sc.TraceID().String()).
		Str(FieldSpanID, sc.SpanID().String()).
		Logger()}
}

// WithComponent tags every line with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{zl: l.zl.With().Str(FieldComponent, name).Logger()}
}

// WithFields returns a logger that adds fields to every line.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	ctx := l.zl.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{zl: ctx.Logger()}
}

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	write(l.zl.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	write(l.zl.Info(), msg, fields)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	write(l.zl.Warn(), msg, fields)
}

func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	write(l.zl.Error(), msg, fields)
}

// global returns the logger installed by Init, or an info-level console
// logger on stderr before Init has run.
func global() *Logger {
	if globalLogger == nil {
		globalLogger = NewWithWriter(Config{Level: "info", Format: "console"}, os.Stderr)
	}
	return globalLogger
}

// Debug logs through the global logger.
func Debug(msg string, fields ...map[string]interface{}) { global().Debug(msg, fields...) }

// Info logs through the global logger.
func Info(msg string, fields ...map[string]interface{}) { global().Info(msg, fields...) }

// Warn logs through the global logger.
func Warn(msg string, fields ...map[string]interface{}) { global().Warn(msg, fields...) }

func write(event *zerolog.Event, msg string, fields []map[string]interface{}) {
	for _, fm := range fields {
		for k, v := range fm {
			event.Interface(k, v)
		}
	}
	event.Msg(msg)
}

func isConsole(format string) bool {
	f := strings.ToLower(format)
	return f == "console" || f == FormatPretty
}

func outputWriter(output string) io.Writer {
	if strings.EqualFold(output, "stdout") {
		return os.Stdout
	}
	return os.Stderr
}

// consoleWriter renders "15:04:05.000 [INF] [waiter] message key:value".
// The component moves from the trailing fields to a bracketed tag and the
// service name is left to JSON output.
func consoleWriter(out io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			FieldComponent,
			zerolog.MessageFieldName,
		},
		FieldsExclude: []string{FieldComponent, FieldService},
		FormatLevel: func(i interface{}) string {
			return levelTag(strings.ToUpper(fmt.Sprint(i)), noColor)
		},
		FormatPartValueByName: func(v interface{}, name string) string {
			if name != FieldComponent || v == nil {
				return ""
			}
			if noColor {
				return fmt.Sprintf("[%s]", v)
			}
			return fmt.Sprintf("\033[34m[%s]\033[0m", v)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s:", i)
		},
	}
}

var levelShort = map[string]struct{ tag, color string }{
	"TRACE": {"TRC", "\033[90m"},
	"DEBUG": {"DBG", "\033[36m"},
	"INFO":  {"INF", "\033[32m"},
	"WARN":  {"WRN", "\033[33m"},
	"ERROR": {"ERR", "\033[31m"},
	"FATAL": {"FTL", "\033[35m"},
}

func levelTag(lvl string, noColor bool) string {
	s, ok := levelShort[lvl]
	if !ok {
		return "[" + lvl + "]"
	}
	if noColor {
		return "[" + s.tag + "]"
	}
	return s.color + "[" + s.tag + "]\033[0m"
}
