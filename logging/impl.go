package logging

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type closer interface {
	Close() error
}

type impl struct {
	*zap.SugaredLogger

	name    string
	level   zap.AtomicLevel
	closers []closer
}

func newImpl(name string, level zap.AtomicLevel, closers []closer, cores ...zapcore.Core) *impl {
	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Sugar()
	if name != "" {
		logger = logger.Named(name)
	}
	return &impl{
		SugaredLogger: logger,
		name:          name,
		level:         level,
		closers:       closers,
	}
}

func (imp *impl) Sublogger(subname string) Logger {
	newName := subname
	if imp.name != "" {
		newName = imp.name + "." + subname
	}
	return &impl{
		SugaredLogger: imp.SugaredLogger.Named(subname),
		name:          newName,
		level:         imp.level,
		closers:       imp.closers,
	}
}

func (imp *impl) SetLevel(level Level) {
	imp.level.SetLevel(level.AsZap())
}

func (imp *impl) GetLevel() Level {
	return LevelFromZap(imp.level.Level())
}

func (imp *impl) AsZap() *zap.SugaredLogger {
	return imp.SugaredLogger
}

// Sync flushes buffered output and closes any rotating log files.
func (imp *impl) Sync() error {
	err := imp.SugaredLogger.Sync()
	for _, c := range imp.closers {
		err = multierr.Combine(err, c.Close())
	}
	return err
}
