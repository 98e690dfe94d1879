package settings

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings is the process configuration, read once at startup and passed
// explicitly to whatever needs it.
type Settings struct {
	Addr      string     // HTTP listen address for serve
	ImageSize int        // rendered image edge (px)
	OutputDir string     // default directory for rendered files
	RateLimit float64    // render requests per second per client
	RateBurst int        // limiter burst
	LogLevel  slog.Level // minimum log level
	EnvFile   string     // .env file that was loaded, empty if none
}

// Defaults returns the settings used when nothing is configured
func Defaults() Settings {
	return Settings{
		Addr:      ":8080",
		ImageSize: 1200,
		OutputDir: ".",
		RateLimit: 5,
		RateBurst: 10,
		LogLevel:  slog.LevelInfo,
	}
}

// Load reads an optional .env file and then the SHORING_* environment
// variables. A missing .env file is not an error.
func Load(envFile string) (Settings, error) {
	s := Defaults()

	if envFile != "" {
		switch err := godotenv.Load(envFile); {
		case err == nil:
			s.EnvFile = envFile
		case errors.Is(err, fs.ErrNotExist):
		default:
			return s, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if v := os.Getenv("SHORING_ADDR"); v != "" {
		s.Addr = v
	}
	if v := os.Getenv("SHORING_OUTPUT_DIR"); v != "" {
		s.OutputDir = v
	}

	var err error
	if s.ImageSize, err = intEnv("SHORING_IMAGE_SIZE", s.ImageSize); err != nil {
		return s, err
	}
	if s.RateBurst, err = intEnv("SHORING_RATE_BURST", s.RateBurst); err != nil {
		return s, err
	}
	if v := os.Getenv("SHORING_RATE_LIMIT"); v != "" {
		if s.RateLimit, err = strconv.ParseFloat(v, 64); err != nil || s.RateLimit <= 0 {
			return s, fmt.Errorf("SHORING_RATE_LIMIT: invalid value %q", v)
		}
	}
	if v := os.Getenv("SHORING_LOG_LEVEL"); v != "" {
		if err := s.LogLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return s, fmt.Errorf("SHORING_LOG_LEVEL: %w", err)
		}
	}

	return s, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def, fmt.Errorf("%s: invalid value %q", key, v)
	}
	return n, nil
}

// Logger returns a text logger writing to w at the configured level
func (s Settings) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: s.LogLevel}))
}
