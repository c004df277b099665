package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger

// Init configures the global logger. Development uses text output with
// debug level, everything else uses JSON at info level.
func Init(environment string) {
	var handler slog.Handler

	if environment == "development" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

func get() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	get().Error(msg, args...)
}

// Fatal logs at error level then exits.
func Fatal(msg string, args ...any) {
	get().Error(msg, args...)
	os.Exit(1)
}
