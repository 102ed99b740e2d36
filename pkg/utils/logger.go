package utils

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogName = "rental-booking"

// InitLogger builds the application logger. Entries go to stdout and, when
// LogPath is set, to a rotating <app-name>.log in that directory.
func InitLogger(app AppConfig) (*zap.Logger, error) {
	return newLogger(app, zapcore.AddSync(os.Stdout))
}

func newLogger(app AppConfig, console zapcore.WriteSyncer) (*zap.Logger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	level := zap.InfoLevel
	if app.Debug {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		level = zap.DebugLevel
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.CallerKey = "caller"
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	consoleEncoder := zapcore.NewJSONEncoder(encoderConfig)
	if app.Debug {
		consoleEncoder = zapcore.NewConsoleEncoder(encoderConfig)
	}
	cores := []zapcore.Core{zapcore.NewCore(consoleEncoder, console, level)}

	name := logName(app.Name)
	if app.LogPath != "" {
		if err := os.MkdirAll(app.LogPath, 0755); err != nil {
			return nil, err
		}
		// The file stays JSON even in debug so it can be shipped as-is.
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(app.LogPath, name+".log"),
			MaxSize:    10, // MB
			MaxBackups: 7,
			MaxAge:     28, // days
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), fileWriter, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()).
		With(zap.String("app", name)), nil
}

// logName turns the configured app name into a file-safe slug.
func logName(appName string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(appName)), "-")
	slug = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '-'
		}
		return r
	}, slug)
	if slug == "" {
		return defaultLogName
	}
	return slug
}
