package log

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"src.goblgobl.com/ticketgimp/codes"
)

type Config struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// replaced by Configure; until then anything logged during
// startup still goes somewhere useful
var logger = mustDefault()

func mustDefault() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func Configure(config Config) error {
	var zc zap.Config
	switch strings.ToLower(config.Format) {
	case "", "json":
		zc = zap.NewProductionConfig()
	case "console", "text":
		zc = zap.NewDevelopmentConfig()
	default:
		return Errf(codes.ERR_INVALID_LOG_FORMAT, "log.format is invalid. Should be one of: json, console")
	}

	level := config.Level
	if level == "" {
		level = "info"
	}
	atomic, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return Errf(codes.ERR_INVALID_LOG_LEVEL, "log.level is invalid. Should be one of: debug, info, warn, error, fatal")
	}
	zc.Level = atomic
	zc.EncoderConfig.TimeKey = "t"
	zc.EncoderConfig.EncodeTime = zapcore.EpochMillisTimeEncoder
	zc.DisableStacktrace = true

	l, err := zc.Build()
	if err != nil {
		return fmt.Errorf("log.Configure - %w", err)
	}
	logger = l
	return nil
}

// Swaps the global logger. Used by tests that want to observe what
// gets logged.
func Use(l *zap.Logger) {
	logger = l
}

func Logger() *zap.Logger {
	return logger
}

func Noop() *zap.Logger {
	return zap.NewNop()
}

func Info(ctx string, fields ...zap.Field) {
	logger.Info(ctx, fields...)
}

func Warn(ctx string, fields ...zap.Field) {
	logger.Warn(ctx, fields...)
}

func Error(ctx string, fields ...zap.Field) {
	logger.Error(ctx, fields...)
}

func Fatal(ctx string, fields ...zap.Field) {
	logger.Fatal(ctx, fields...)
}

func Sync() {
	_ = logger.Sync()
}

// An error with a project-unique code attached.
type CodedError struct {
	Code int
	Err  error
}

func (e *CodedError) Error() string {
	return fmt.Sprintf("code: %d - %s", e.Code, e.Err.Error())
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

func Err(code int, err error) error {
	return &CodedError{Code: code, Err: err}
}

func Errf(code int, format string, args ...any) error {
	return &CodedError{Code: code, Err: fmt.Errorf(format, args...)}
}

// Returns the code of the first CodedError in err's chain, or 0.
func ErrorCode(err error) int {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return 0
}
