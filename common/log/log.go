package log

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// log is the zap-backed implementation of Logger
type log struct {
	*zap.SugaredLogger
}

// Logger is the leveled logging capability handed to the controller and to
// the client programs. Nothing in the execution core reaches for a global
// logger: it always uses the Logger it was constructed with.
//
//nolint:interfacebloat // mirrors the zap sugared API we rely on
type Logger interface {
	Info(keyvals ...interface{})
	Debug(keyvals ...interface{})
	Warn(keyvals ...interface{})
	Error(keyvals ...interface{})
	Fatal(keyvals ...interface{})
	Infow(msg string, keyvals ...interface{})
	Debugw(msg string, keyvals ...interface{})
	Warnw(msg string, keyvals ...interface{})
	Errorw(msg string, keyvals ...interface{})
	Fatalw(msg string, keyvals ...interface{})
	With(args ...interface{}) Logger
	Named(s string) Logger
	Sync() error
}

func (l *log) With(args ...interface{}) Logger {
	return &log{l.SugaredLogger.With(args...)}
}

func (l *log) Named(s string) Logger {
	return &log{l.SugaredLogger.Named(s)}
}

const (
	InfoLevel  = int(zapcore.InfoLevel)
	DebugLevel = int(zapcore.DebugLevel)
	ErrorLevel = int(zapcore.ErrorLevel)
	FatalLevel = int(zapcore.FatalLevel)
	WarnLevel  = int(zapcore.WarnLevel)
)

// DefaultLevel is the level used by DefaultLogger.
var DefaultLevel = InfoLevel

var isDefaultLoggerSet sync.Once

// DefaultLogger is the process logger writing to stderr. It serves
// FromContextOrDefault when the context carries no logger.
func DefaultLogger() Logger {
	isDefaultLoggerSet.Do(func() {
		zap.ReplaceGlobals(newZapLogger(getConsoleEncoder(), DefaultLevel, os.Stderr))
	})

	return &log{zap.S()}
}

// New returns a logger that prints statements at the given level to output,
// or to stdout when output is nil.
func New(output zapcore.WriteSyncer, level int, isJSON bool) Logger {
	if output == nil {
		output = os.Stdout
	}
	return NewTee(level, isJSON, output)
}

// NewTee returns a logger writing every statement to all the given outputs,
// e.g. the terminal and a log file.
func NewTee(level int, isJSON bool, outputs ...zapcore.WriteSyncer) Logger {
	encoder := getConsoleEncoder()
	if isJSON {
		encoder = getJSONEncoder()
	}
	return &log{newZapLogger(encoder, level, outputs...).Sugar()}
}

func newZapLogger(encoder zapcore.Encoder, level int, outputs ...zapcore.WriteSyncer) *zap.Logger {
	if len(outputs) == 0 {
		outputs = []zapcore.WriteSyncer{os.Stdout}
	}
	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(outputs...), zapcore.Level(level))
	return zap.New(core, zap.WithCaller(true))
}

func getJSONEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()

	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	return zapcore.NewJSONEncoder(encoderConfig)
}

func getConsoleEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()

	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	return zapcore.NewConsoleEncoder(encoderConfig)
}

type ctxLoggerKey string

const ctxLogger ctxLoggerKey = "sealedbidLogger"

// ToContext allows setting the logger on the context
func ToContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxLogger, l)
}

// FromContextOrDefault returns the logger stored with ToContext, or the
// default logger when there is none.
func FromContextOrDefault(ctx context.Context) Logger {
	l, ok := ctx.Value(ctxLogger).(Logger)
	if !ok {
		l = DefaultLogger()
		l.Debugw("logger missing on context, using default logger")
	}
	return l
}
