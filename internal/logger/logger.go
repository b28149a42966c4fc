// Package logger is a printf-style facade over zap with three verbosity
// settings. It is safe for concurrent use.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is how much the logger writes.
type Level int

const (
	LevelOff     Level = iota // nothing
	LevelNormal               // info, warn and error
	LevelVerbose              // everything, debug included
)

// Logger writes console-encoded lines such as
// "08:15:02  INFO  engine: at slide protein".
type Logger struct {
	atom  zap.AtomicLevel
	sugar *zap.SugaredLogger
}

// New returns a logger writing to out, or to stderr when out is nil.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = "t"
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.CallerKey = ""

	atom := zap.NewAtomicLevelAt(level.zap())
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(out), atom)
	return &Logger{atom: atom, sugar: zap.New(core).Sugar()}
}

// zap maps a Level onto the lowest zap level it lets through. LevelOff
// sits above everything the facade can emit.
func (l Level) zap() zapcore.Level {
	switch l {
	case LevelVerbose:
		return zapcore.DebugLevel
	case LevelNormal:
		return zapcore.InfoLevel
	default:
		return zapcore.FatalLevel
	}
}

func (l *Logger) SetLevel(level Level) { l.atom.SetLevel(level.zap()) }

func (l *Logger) GetLevel() Level {
	switch l.atom.Level() {
	case zapcore.DebugLevel:
		return LevelVerbose
	case zapcore.FatalLevel:
		return LevelOff
	default:
		return LevelNormal
	}
}

func (l *Logger) Debug(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *Logger) Error(format string, args ...any) { l.sugar.Errorf(format, args...) }

// Sync flushes buffered output. Call before exit.
func (l *Logger) Sync() error { return l.sugar.Sync() }
