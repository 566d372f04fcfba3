package log

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/gpr/pkg/errors"
)

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = NewSlogProvider(slog.Default(), LevelInfo)
)

// SetProvider replaces the process-wide logger provider.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

// GetLogger returns the default logger of the current provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a logger tagged with the given component name.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}

// UseZerolog switches the provider to a zerolog backend writing to w and
// routes library warnings (errors.Warn) through it.
func UseZerolog(w io.Writer, loglevel string) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}
	p := NewZerologProvider(zerolog.New(w).With().Timestamp().Logger(), level)
	SetProvider(p)
	errors.SetZerologWarnFunc(func(warning error) {
		event := p.base.Warn()
		if m, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event = event.EmbedObject(m)
		}
		event.Msg(warning.Error())
	})
	return nil
}

// ===========================================================================
// slog backend
// ===========================================================================

// SlogProvider hands out loggers backed by a *slog.Logger.
type SlogProvider struct {
	base  *slog.Logger
	level *slog.LevelVar
}

// NewSlogProvider creates a provider around base. The level filter is applied
// on top of whatever the base handler already filters.
func NewSlogProvider(base *slog.Logger, level Level) *SlogProvider {
	lv := &slog.LevelVar{}
	lv.Set(slog.Level(level))
	return &SlogProvider{base: base, level: lv}
}

func (p *SlogProvider) GetLogger() Logger {
	return &slogLogger{logger: p.base, level: p.level}
}

func (p *SlogProvider) GetLoggerWithName(name string) Logger {
	return &slogLogger{logger: p.base.With(ComponentKey, name), level: p.level}
}

func (p *SlogProvider) SetLevel(level Level) {
	p.level.Set(slog.Level(level))
}

type slogLogger struct {
	logger *slog.Logger
	level  *slog.LevelVar
}

func (l *slogLogger) log(level Level, msg string, fields ...any) {
	ctx := context.Background()
	if !l.Enabled(ctx, level) {
		return
	}
	l.logger.Log(ctx, slog.Level(level), msg, normalizeFields(fields)...)
}

func (l *slogLogger) Debug(msg string, fields ...any) { l.log(LevelDebug, msg, fields...) }
func (l *slogLogger) Info(msg string, fields ...any)  { l.log(LevelInfo, msg, fields...) }
func (l *slogLogger) Warn(msg string, fields ...any)  { l.log(LevelWarn, msg, fields...) }
func (l *slogLogger) Error(msg string, fields ...any) { l.log(LevelError, msg, fields...) }

func (l *slogLogger) With(fields ...any) Logger {
	return &slogLogger{logger: l.logger.With(normalizeFields(fields)...), level: l.level}
}

func (l *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return slog.Level(level) >= l.level.Level() && l.logger.Enabled(ctx, slog.Level(level))
}

// normalizeFields turns a leading error into an ErrAttr so ErrFmtHandler can
// attach its stack trace.
func normalizeFields(fields []any) []any {
	if len(fields) == 0 {
		return fields
	}
	if err, ok := fields[0].(error); ok {
		out := make([]any, 0, len(fields))
		out = append(out, ErrAttr(err))
		return append(out, fields[1:]...)
	}
	return fields
}

// ===========================================================================
// zerolog backend
// ===========================================================================

// ZerologProvider hands out loggers backed by a zerolog.Logger.
type ZerologProvider struct {
	base zerolog.Logger
}

// NewZerologProvider creates a provider around base at the given level.
func NewZerologProvider(base zerolog.Logger, level Level) *ZerologProvider {
	return &ZerologProvider{base: base.Level(toZerologLevel(level))}
}

func (p *ZerologProvider) GetLogger() Logger {
	return &zerologLogger{logger: p.base}
}

func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	return &zerologLogger{logger: p.base.With().Str(ComponentKey, name).Logger()}
}

func (p *ZerologProvider) SetLevel(level Level) {
	p.base = p.base.Level(toZerologLevel(level))
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

type zerologLogger struct {
	logger zerolog.Logger
}

func (l *zerologLogger) emit(event *zerolog.Event, msg string, fields []any) {
	if event == nil {
		return
	}
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			event = event.Err(err)
			var m zerolog.LogObjectMarshaler
			if errors.As(err, &m) {
				event = event.EmbedObject(m)
			}
			fields = fields[1:]
		}
	}
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	event.Msg(msg)
}

func (l *zerologLogger) Debug(msg string, fields ...any) { l.emit(l.logger.Debug(), msg, fields) }
func (l *zerologLogger) Info(msg string, fields ...any)  { l.emit(l.logger.Info(), msg, fields) }
func (l *zerologLogger) Warn(msg string, fields ...any)  { l.emit(l.logger.Warn(), msg, fields) }
func (l *zerologLogger) Error(msg string, fields ...any) { l.emit(l.logger.Error(), msg, fields) }

func (l *zerologLogger) With(fields ...any) Logger {
	return &zerologLogger{logger: l.logger.With().Fields(fields).Logger()}
}

func (l *zerologLogger) Enabled(ctx context.Context, level Level) bool {
	return l.logger.GetLevel() <= toZerologLevel(level)
}
