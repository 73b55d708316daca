package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func writeConfigFile(t *testing.T, name string, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file failed: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(viper.New())
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}

	if cfg.logLevel != slog.LevelInfo {
		t.Fatalf("log level = %v, want info", cfg.logLevel)
	}
	if cfg.telegramTags {
		t.Fatal("telegram tags = true, want false")
	}
	if cfg.format != formatHTML {
		t.Fatalf("format = %s, want %s", cfg.format, formatHTML)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	yamlConfig := writeConfigFile(t, "tgrender.yaml", "log_level: debug\ntelegram_tags: true\nformat: json\n")

	t.Run("config file overrides defaults", func(t *testing.T) {
		v := viper.New()
		v.Set("config", yamlConfig)

		cfg, err := loadConfig(v)
		if err != nil {
			t.Fatalf("load config failed: %v", err)
		}
		if cfg.logLevel != slog.LevelDebug || !cfg.telegramTags || cfg.format != formatJSON {
			t.Fatalf("cfg = %+v, want file values", cfg)
		}
	})

	t.Run("env overrides config file", func(t *testing.T) {
		t.Setenv("TGRENDER_CONFIG", yamlConfig)
		t.Setenv("TGRENDER_LOG_LEVEL", "warn")
		t.Setenv("TGRENDER_TELEGRAM_TAGS", "false")

		cfg, err := loadConfig(viper.New())
		if err != nil {
			t.Fatalf("load config failed: %v", err)
		}
		if cfg.logLevel != slog.LevelWarn {
			t.Fatalf("log level = %v, want warn", cfg.logLevel)
		}
		if cfg.telegramTags {
			t.Fatal("telegram tags = true, want env override false")
		}
		if cfg.format != formatJSON {
			t.Fatalf("format = %s, want file value json", cfg.format)
		}
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("TGRENDER_FORMAT", "json")

		root := newRootCommand()
		render, _, err := root.Find([]string{"render"})
		if err != nil {
			t.Fatalf("find render command failed: %v", err)
		}
		if err := render.Flags().Set("format", "html"); err != nil {
			t.Fatalf("set format flag failed: %v", err)
		}
		if err := root.PersistentFlags().Set("log-level", "error"); err != nil {
			t.Fatalf("set log-level flag failed: %v", err)
		}

		v := viper.New()
		if err := v.BindPFlag("format", render.Flags().Lookup("format")); err != nil {
			t.Fatalf("bind format flag failed: %v", err)
		}
		if err := v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level")); err != nil {
			t.Fatalf("bind log-level flag failed: %v", err)
		}

		cfg, err := loadConfig(v)
		if err != nil {
			t.Fatalf("load config failed: %v", err)
		}
		if cfg.format != formatHTML {
			t.Fatalf("format = %s, want flag value html", cfg.format)
		}
		if cfg.logLevel != slog.LevelError {
			t.Fatalf("log level = %v, want flag value error", cfg.logLevel)
		}
	})
}

func TestLoadConfigJSONFile(t *testing.T) {
	v := viper.New()
	v.Set("config", writeConfigFile(t, "tgrender.json", `{"format":"json","log_level":"error"}`))

	cfg, err := loadConfig(v)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.format != formatJSON || cfg.logLevel != slog.LevelError {
		t.Fatalf("cfg = %+v, want json format and error level", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		file    string
	}{
		{name: "unsupported format", file: "bad-format.yaml", content: "format: xml\n"},
		{name: "unsupported level", file: "bad-level.yaml", content: "log_level: loud\n"},
		{name: "malformed file", file: "broken.yaml", content: "format: [\n"},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			v := viper.New()
			v.Set("config", writeConfigFile(t, testCase.file, testCase.content))

			if _, err := loadConfig(v); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		v := viper.New()
		v.Set("config", filepath.Join(t.TempDir(), "missing.yaml"))

		if _, err := loadConfig(v); err == nil {
			t.Fatal("expected error for missing config file")
		}
	})
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    slog.Level
		wantErr bool
	}{
		{raw: "debug", want: slog.LevelDebug},
		{raw: " INFO ", want: slog.LevelInfo},
		{raw: "warning", want: slog.LevelWarn},
		{raw: "error", want: slog.LevelError},
		{raw: "trace", wantErr: true},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.raw, func(t *testing.T) {
			t.Parallel()

			got, err := parseLogLevel(testCase.raw)
			if testCase.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if got != testCase.want {
				t.Fatalf("level = %v, want %v", got, testCase.want)
			}
		})
	}
}
