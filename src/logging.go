package main

import (
	"log/slog"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/fachschaft/dms/src/paths"
)

var loggerOnce sync.Once

// LogConfig holds logging configuration
type LogConfig struct {
	Level    string // debug, info, warn, error (default: warn)
	File     string // Log file path (empty = {log_dir}/cli.log)
	MaxSize  int    // Max log file size in MB (default: 10)
	MaxFiles int    // Max log files to keep (default: 5)
}

// GetLogConfig returns logging configuration from viper
func GetLogConfig() LogConfig {
	return LogConfig{
		Level:    viper.GetString("logging.level"),
		File:     viper.GetString("logging.file"),
		MaxSize:  viper.GetInt("logging.max_size"),
		MaxFiles: viper.GetInt("logging.max_files"),
	}
}

// InitLogging directs slog into a rotated file under the log
// directory. Terminal output stays reserved for user-facing text.
func InitLogging() error {
	loggerOnce.Do(func() {
		cfg := GetLogConfig()

		logPath := cfg.File
		if logPath == "" {
			logPath = paths.LogFile()
		}

		maxSize := cfg.MaxSize
		if maxSize == 0 {
			maxSize = 10 // MB
		}
		maxFiles := cfg.MaxFiles
		if maxFiles == 0 {
			maxFiles = 5
		}

		rotatingWriter := &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    maxSize,
			MaxBackups: maxFiles,
			MaxAge:     30, // days
			Compress:   true,
		}

		var level slog.Level
		switch cfg.Level {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelWarn
		}

		handler := slog.NewJSONHandler(rotatingWriter, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
	})
	return nil
}
