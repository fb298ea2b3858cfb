package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := Path(), "/custom/config/tmap/config.yml"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := Path(), filepath.Join(home, ".config", "tmap", "config.yml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestLoad_NotFound(t *testing.T) {
	Reset()
	defer Reset()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	Reset()
	defer Reset()

	path := writeConfig(t, "dataset: https://example.org/toembed.csv\ndelimiter: \",\"\nport: 9000\nlog_level: debug\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Dataset != "https://example.org/toembed.csv" || cfg.Port != 9000 {
		t.Errorf("Load() = %+v", cfg)
	}
	if r, _ := cfg.DelimiterRune(); r != ',' {
		t.Errorf("DelimiterRune() = %q, want ','", r)
	}
	if lvl, _ := cfg.SlogLevel(); lvl != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", lvl)
	}
	if cfg.SearchRate != DefaultSearchRate {
		t.Errorf("SearchRate = %v, want default", cfg.SearchRate)
	}
}

func TestLoad_Cached(t *testing.T) {
	Reset()
	defer Reset()

	first, err := Load(writeConfig(t, "port: 9001\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := Load(writeConfig(t, "port: 9002\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if first != second || second.Port != 9001 {
		t.Errorf("second Load() should hit the cache, got port %d", second.Port)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	Reset()
	defer Reset()

	t.Setenv(EnvDataset, "/data/other.csv")
	t.Setenv(EnvPort, "7070")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(writeConfig(t, "dataset: file.csv\nport: 9000\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Dataset != "/data/other.csv" || cfg.Port != 7070 || cfg.LogLevel != "warn" {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "bad yaml", content: "port: [\n"},
		{name: "multi-char delimiter", content: "delimiter: \";;\"\n"},
		{name: "bad log level", content: "log_level: loud\n"},
		{name: "port out of range", content: "port: 70000\n"},
		{name: "bad env port", content: "", env: map[string]string{EnvPort: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reset()
			defer Reset()
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("TMAP_TEST_DOTENV=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TMAP_TEST_DOTENV", "")
	os.Unsetenv("TMAP_TEST_DOTENV")

	if err := LoadDotEnv(envFile, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("TMAP_TEST_DOTENV"); got != "from-file" {
		t.Errorf("TMAP_TEST_DOTENV = %q, want from-file", got)
	}
}
