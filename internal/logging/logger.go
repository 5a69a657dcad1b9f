package logging

import (
	"fmt"

	"github.com/mikey/phishawk/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a configured level name to a zap level, defaulting to info
func ParseLevel(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// InitLogger initializes a logger based on configuration
func InitLogger(cfg *config.Config) (*zap.Logger, error) {
	return build(
		ParseLevel(cfg.GetString("logging.level")),
		cfg.GetString("logging.format") == "json",
		cfg.GetString("logging.output"),
	)
}

// InitConsoleLogger initializes a console-friendly logger. Output goes to
// stderr unless outputPath names a file, keeping stdout free for results.
func InitConsoleLogger(verbose bool, jsonFormat bool, outputPath string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	return build(level, jsonFormat, outputPath)
}

func build(level zapcore.Level, jsonFormat bool, outputPath string) (*zap.Logger, error) {
	var logConfig zap.Config
	if jsonFormat {
		logConfig = zap.NewProductionConfig()
	} else {
		logConfig = zap.NewDevelopmentConfig()
		logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	logConfig.Level = zap.NewAtomicLevelAt(level)

	if outputPath == "" {
		outputPath = "stderr"
	}
	logConfig.OutputPaths = []string{outputPath}
	logConfig.ErrorOutputPaths = []string{"stderr"}

	logger, err := logConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger, nil
}
