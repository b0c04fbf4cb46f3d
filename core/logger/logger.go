package logger

import (
	"fmt"

	"mccraft/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FieldFile is the key importer entries carry the export file name under.
const FieldFile = "file"

// New builds a logger from cfg. An empty level means info and an empty format means json.
func New(cfg *Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	if level == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Format {
	case FormatConsole:
		zc.Encoding = FormatConsole
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	case FormatJSON, "":
		zc.Encoding = FormatJSON
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zc.EncoderConfig.LevelKey = "level"
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.MessageKey = "message"

	return zc.Build()
}

// Console is the logger the CLI reports a failed command with, before or
// without a loaded configuration.
func Console() (*zap.Logger, error) {
	return New(&Config{Level: "debug", Format: FormatConsole})
}

// ForFile tags entries with the export file they concern.
func ForFile(l *zap.Logger, name string) *zap.Logger {
	return l.With(zap.String(FieldFile, name))
}

// WithRayID tags entries with the ray id the rayid middleware stored on c.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if rid, ok := c.Locals(rayid.LocalsKey).(string); ok && rid != "" {
		return l.With(zap.String(rayid.LocalsKey, rid))
	}
	return l
}
