package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix       = "TGRENDER"
	defaultLogLevel = "info"

	formatHTML = "html"
	formatJSON = "json"
)

type appConfig struct {
	logLevel     slog.Level
	telegramTags bool
	format       string
}

type fileConfig struct {
	LogLevel     string `mapstructure:"log_level"`
	TelegramTags bool   `mapstructure:"telegram_tags"`
	Format       string `mapstructure:"format"`
}

// loadConfig resolves configuration with precedence
// defaults < config file < TGRENDER_* env < command flags.
func loadConfig(v *viper.Viper) (appConfig, error) {
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("telegram_tags", false)
	v.SetDefault("format", formatHTML)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile := strings.TrimSpace(v.GetString("config")); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return appConfig{}, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	var file fileConfig
	if err := v.Unmarshal(&file); err != nil {
		return appConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return parseFileConfig(file)
}

func parseFileConfig(file fileConfig) (appConfig, error) {
	level, err := parseLogLevel(file.LogLevel)
	if err != nil {
		return appConfig{}, fmt.Errorf("parse log_level: %w", err)
	}

	format := strings.ToLower(strings.TrimSpace(file.Format))
	switch format {
	case formatHTML, formatJSON:
	default:
		return appConfig{}, fmt.Errorf("parse format: unsupported format %q", file.Format)
	}

	return appConfig{
		logLevel:     level,
		telegramTags: file.TelegramTags,
		format:       format,
	}, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unsupported level %q", raw)
	}
}
