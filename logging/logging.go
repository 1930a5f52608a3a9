// Package logging contains the zap-backed loggers used by robotstate.
package logging

import (
	"io"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultTimeFormatStr is the format used for timestamps in console output.
const DefaultTimeFormatStr = "2006-01-02T15:04:05.000Z0700"

// Logger is the logging interface handed to every constructor in robotstate.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// Sublogger returns a logger named "<name>.<subname>" that shares outputs and level with
	// its parent.
	Sublogger(subname string) Logger
	SetLevel(level Level)
	GetLevel() Level
	AsZap() *zap.SugaredLogger
	Sync() error
}

// NewLoggerConfig returns the encoder config used for console output: capitalized colored levels,
// UTC timestamps and short callers.
func NewLoggerConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     utcTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func utcTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(DefaultTimeFormatStr))
}

func stdoutCore(level zap.AtomicLevel) zapcore.Core {
	return consoleCore(os.Stdout, level)
}

func consoleCore(w io.Writer, level zap.AtomicLevel) zapcore.Core {
	return zapcore.NewCore(zapcore.NewConsoleEncoder(NewLoggerConfig()), zapcore.Lock(zapcore.AddSync(w)), level)
}

// NewLogger returns a new logger that outputs Info+ logs to stdout in UTC.
func NewLogger(name string) Logger {
	level := zap.NewAtomicLevelAt(INFO.AsZap())
	return newImpl(name, level, nil, stdoutCore(level))
}

// NewDebugLogger returns a new logger that outputs Debug+ logs to stdout in UTC.
func NewDebugLogger(name string) Logger {
	level := zap.NewAtomicLevelAt(DEBUG.AsZap())
	return newImpl(name, level, nil, stdoutCore(level))
}

// NewWriterLogger returns a logger that writes console formatted logs to w, for programs whose
// stdout carries data.
func NewWriterLogger(name string, w io.Writer, level Level) Logger {
	atomicLevel := zap.NewAtomicLevelAt(level.AsZap())
	return newImpl(name, atomicLevel, nil, consoleCore(w, atomicLevel))
}

// NewFileLogger returns a logger that writes to stdout and also to a size-rotated JSON log file
// at path.
func NewFileLogger(name, path string, level Level) Logger {
	return NewFileWriterLogger(name, path, level, os.Stdout)
}

// NewFileWriterLogger is like NewFileLogger with console output going to w instead of stdout.
func NewFileWriterLogger(name, path string, level Level, w io.Writer) Logger {
	atomicLevel := zap.NewAtomicLevelAt(level.AsZap())
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	fileCfg := NewLoggerConfig()
	fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(rotator), atomicLevel)
	return newImpl(name, atomicLevel, []closer{rotator}, consoleCore(w, atomicLevel), fileCore)
}

// NewBlankLogger returns a logger that discards everything. Useful as a default.
func NewBlankLogger(name string) Logger {
	return newImpl(name, zap.NewAtomicLevelAt(DEBUG.AsZap()), nil, zapcore.NewNopCore())
}

// NewTestLogger returns a new logger that outputs Debug+ logs through the `testing.TB` object so
// log lines are associated with the test that produced them.
func NewTestLogger(tb testing.TB) Logger {
	logger, _ := NewObservedTestLogger(tb)
	return logger
}

// NewObservedTestLogger is like NewTestLogger but also saves logs to an in memory observer.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	level := zap.NewAtomicLevelAt(DEBUG.AsZap())
	testCore := zaptest.NewLogger(tb, zaptest.Level(level)).Core()
	observerCore, observedLogs := observer.New(level)
	return newImpl("", level, nil, testCore, observerCore), observedLogs
}
