package settings

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.Addr != ":8080" || s.ImageSize != 1200 || s.EnvFile != "" {
		t.Fatalf("settings = %+v; want defaults", s)
	}
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	body := "SHORING_ADDR=127.0.0.1:9000\nSHORING_IMAGE_SIZE=800\nSHORING_LOG_LEVEL=debug\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv.Load never overrides variables that are already set;
	// t.Setenv registers the restore before the variables are cleared.
	for _, key := range []string{"SHORING_ADDR", "SHORING_IMAGE_SIZE", "SHORING_LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("SHORING_RATE_LIMIT", "2.5")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.Addr != "127.0.0.1:9000" || s.ImageSize != 800 {
		t.Fatalf("settings = %+v", s)
	}
	if s.LogLevel != slog.LevelDebug || s.RateLimit != 2.5 || s.EnvFile != path {
		t.Fatalf("settings = %+v", s)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SHORING_IMAGE_SIZE", "huge")
	if _, err := Load(""); err == nil {
		t.Fatal("Load accepted SHORING_IMAGE_SIZE=huge")
	}
}
