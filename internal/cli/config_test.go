package cli

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points HOME at a temp dir and clears ST_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"ST_DB", "ST_REGION", "ST_LOG_LEVEL", "ST_LOG_JSON", "ST_REMIND_SCHEDULE"} {
		t.Setenv(k, "")
	}
	return home
}

func TestConfigSaveAndLoad(t *testing.T) {
	home := isolate(t)

	want := Config{
		DBPath:         "/tmp/tracker.db",
		Region:         "GB",
		LogLevel:       "debug",
		LogJSON:        true,
		RemindSchedule: "@daily",
	}
	if err := saveConfig(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	path := filepath.Join(home, ".config", "st", "config.yaml")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not found: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("perm = %o, want 600", perm)
	}

	got, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Errorf("loaded %+v, want %+v", got, want)
	}
}

func TestConfigLoadMissing(t *testing.T) {
	isolate(t)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("expected zero-value config for missing file, got %+v", cfg)
	}
}

func TestConfigLoadInvalidYAML(t *testing.T) {
	home := isolate(t)

	path := filepath.Join(home, ".config", "st", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("region: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfig(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	isolate(t)

	if err := saveConfig(Config{DBPath: "/from/file.db", Region: "US"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	t.Setenv("ST_DB", "/from/env.db")
	t.Setenv("ST_REGION", "CA")
	t.Setenv("ST_LOG_LEVEL", "info")
	t.Setenv("ST_LOG_JSON", "true")
	t.Setenv("ST_REMIND_SCHEDULE", "0 7 * * *")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/from/env.db" {
		t.Errorf("db_path = %q", cfg.DBPath)
	}
	if cfg.Region != "CA" {
		t.Errorf("region = %q", cfg.Region)
	}
	if cfg.LogLevel != "info" || !cfg.LogJSON {
		t.Errorf("log settings = %q/%v", cfg.LogLevel, cfg.LogJSON)
	}
	if cfg.RemindSchedule != "0 7 * * *" {
		t.Errorf("remind_schedule = %q", cfg.RemindSchedule)
	}
}

func TestConfigBadLogJSON(t *testing.T) {
	isolate(t)
	t.Setenv("ST_LOG_JSON", "sometimes")

	if _, err := loadConfig(); err == nil {
		t.Fatal("expected error for bad ST_LOG_JSON")
	}
}

func TestDBPathPrecedence(t *testing.T) {
	home := isolate(t)

	old := flagDB
	t.Cleanup(func() { flagDB = old })

	flagDB = ""
	got, err := dbPath(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".sales-tracker", "tracker.db"); got != want {
		t.Errorf("default = %q, want %q", got, want)
	}

	got, _ = dbPath(Config{DBPath: "/cfg.db"})
	if got != "/cfg.db" {
		t.Errorf("config = %q, want /cfg.db", got)
	}

	flagDB = "/flag.db"
	got, _ = dbPath(Config{DBPath: "/cfg.db"})
	if got != "/flag.db" {
		t.Errorf("flag = %q, want /flag.db", got)
	}
}

func TestRegionDefault(t *testing.T) {
	if got := region(Config{}); got != "US" {
		t.Errorf("region = %q, want US", got)
	}
	if got := region(Config{Region: "GB"}); got != "GB" {
		t.Errorf("region = %q, want GB", got)
	}
}
