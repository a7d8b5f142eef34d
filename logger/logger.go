package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// Flag to track if JSON output is enabled
	JSONOutput bool
)

func init() {
	// No-op until Initialize runs so library callers never hit a nil logger
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger.
// Output goes to stderr so stdout stays reserved for fetched records.
func Initialize(jsonOutput bool, verbosity int) error {
	return InitializeWriter(os.Stderr, jsonOutput, verbosity)
}

// InitializeWriter sets up the global logger to write to w
func InitializeWriter(w io.Writer, jsonOutput bool, verbosity int) error {
	JSONOutput = jsonOutput
	level := VerbosityToLevel(verbosity)

	var encoder zapcore.Encoder
	if jsonOutput {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	Logger = zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level)).Sugar()
	return nil
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
