package log

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *zap.Logger

type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
}

type Options struct {
	Production bool
	Level      string
	File       FileOptions
	Remote     RemoteOptions
}

// Init builds the process logger: console always, plus file and remote sinks when configured.
// The result also becomes the zap global logger.
func Init(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if len(opts.Level) > 0 {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, errors.Wrapf(err, "Invalid log level %q", opts.Level)
		}
	}

	config := consoleConfig(opts.Production)
	config.Level = zap.NewAtomicLevelAt(level)

	console, err := config.Build(zap.AddStacktrace(zap.WarnLevel))
	if err != nil {
		return nil, errors.Wrap(err, "Failed to init zap logger")
	}

	cores := make([]zapcore.Core, 0, 2)
	if len(opts.File.Path) > 0 {
		cores = append(cores, newFileCore(opts.File, level))
	}
	if len(opts.Remote.URL) > 0 {
		cores = append(cores, NewRemoteCore(opts.Remote, level, console.Named("remote_sink")))
	}

	logger = console
	if len(cores) > 0 {
		logger = console.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(append([]zapcore.Core{core}, cores...)...)
		}))
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}

func consoleConfig(production bool) zap.Config {
	if production {
		return zap.NewProductionConfig()
	}
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.ConsoleSeparator = " "
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.StampMilli)
	return config
}

func newFileCore(opts FileOptions, level zapcore.LevelEnabler) zapcore.Core {
	writer := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}
	return zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(writer),
		level,
	)
}

func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
