package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

type format int

const (
	formatText format = iota
	formatJSON
	formatColor
)

// Option configures the logger built by New.
type Option func(*options)

type options struct {
	level   slog.Leveler
	format  format
	output  io.Writer
	attrs   []slog.Attr
	handler *slog.HandlerOptions
}

// New creates a *slog.Logger. Without options it writes text at info level to stdout.
func New(opts ...Option) *slog.Logger {
	o := &options{
		level:  slog.LevelInfo,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}

	ho := o.handler
	if ho == nil {
		ho = &slog.HandlerOptions{}
	}
	if ho.Level == nil {
		ho.Level = o.level
	}

	var h slog.Handler
	switch o.format {
	case formatJSON:
		h = slog.NewJSONHandler(o.output, ho)
	case formatColor:
		h = tint.NewHandler(o.output, &tint.Options{
			Level:       ho.Level,
			AddSource:   ho.AddSource,
			ReplaceAttr: ho.ReplaceAttr,
			TimeFormat:  time.TimeOnly,
			NoColor:     !isTerminal(o.output),
		})
	default:
		h = slog.NewTextHandler(o.output, ho)
	}
	if len(o.attrs) > 0 {
		h = h.WithAttrs(o.attrs)
	}
	return slog.New(h)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetAsDefault installs l as the process-wide slog default.
func SetAsDefault(l *slog.Logger) {
	if l != nil {
		slog.SetDefault(l)
	}
}

// WithLevel sets the minimum level.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) {
		if level != nil {
			o.level = level
		}
	}
}

// WithJSONFormatter switches output to JSON.
func WithJSONFormatter() Option {
	return func(o *options) { o.format = formatJSON }
}

// WithTextFormatter switches output to logfmt-style text.
func WithTextFormatter() Option {
	return func(o *options) { o.format = formatText }
}

// WithColorFormatter switches output to human-friendly colored text.
// Colors are disabled automatically when the output is not a terminal.
func WithColorFormatter() Option {
	return func(o *options) { o.format = formatColor }
}

// WithOutput sets the destination writer.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithAttr adds attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// WithHandlerOptions replaces the slog handler options. A nil Level in opts
// falls back to the level configured with WithLevel.
func WithHandlerOptions(ho *slog.HandlerOptions) Option {
	return func(o *options) {
		if ho != nil {
			cp := *ho
			o.handler = &cp
		}
	}
}

// WithDevelopment configures colored text output at debug level.
func WithDevelopment(service string) Option {
	return func(o *options) {
		o.format = formatColor
		o.level = slog.LevelDebug
		o.attrs = append(o.attrs, slog.String("service", service), slog.String("env", "development"))
	}
}

// WithProduction configures JSON output at info level.
func WithProduction(service string) Option {
	return func(o *options) {
		o.format = formatJSON
		o.level = slog.LevelInfo
		o.attrs = append(o.attrs, slog.String("service", service), slog.String("env", "production"))
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
