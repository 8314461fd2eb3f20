package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Fepozopo/patternfill/pkg/maskfill"
	"github.com/joho/godotenv"
)

// DefaultMaxDimension bounds outline images before mask building.
const DefaultMaxDimension = 2048

// Config holds runtime options read from the environment (and .env files).
type Config struct {
	// MaxDimension downscales larger outlines; 0 disables the guard.
	MaxDimension int
	Options      maskfill.MaskOptions
	// PresetPath is loaded into the session at startup when set.
	PresetPath string
	// LogLevel is only meaningful when Logging is true.
	LogLevel slog.Level
	Logging  bool
}

// DefaultConfig returns the configuration used when no variables are set.
func DefaultConfig() Config {
	return Config{
		MaxDimension: DefaultMaxDimension,
		Options:      maskfill.DefaultMaskOptions(),
	}
}

// LoadConfig loads the given dotenv files (".env" when none are given) into the
// process environment and reads Config from it. Missing files are not an error.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), fmt.Errorf("load env: %w", err)
	}
	return configFromEnv(os.Getenv)
}

// ReadConfigFile reads Config from a single dotenv file without touching the
// process environment.
func ReadConfigFile(path string) (Config, error) {
	vals, err := godotenv.Read(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read env file %s: %w", path, err)
	}
	return configFromEnv(func(k string) string { return vals[k] })
}

func configFromEnv(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	var err error
	if cfg.MaxDimension, err = envInt(getenv, "PATTERNFILL_MAX_DIMENSION", cfg.MaxDimension); err != nil {
		return DefaultConfig(), err
	}
	if cfg.MaxDimension < 0 {
		return DefaultConfig(), fmt.Errorf("PATTERNFILL_MAX_DIMENSION: must not be negative, got %d", cfg.MaxDimension)
	}
	if cfg.Options.GapCloseRadius, err = envInt(getenv, "PATTERNFILL_GAP_RADIUS", cfg.Options.GapCloseRadius); err != nil {
		return DefaultConfig(), err
	}
	if cfg.Options.MinRegionSize, err = envInt(getenv, "PATTERNFILL_MIN_REGION", cfg.Options.MinRegionSize); err != nil {
		return DefaultConfig(), err
	}
	cfg.PresetPath = strings.TrimSpace(getenv("PATTERNFILL_PRESET"))
	if lvl := strings.TrimSpace(getenv("PATTERNFILL_LOG_LEVEL")); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return DefaultConfig(), fmt.Errorf("PATTERNFILL_LOG_LEVEL: %w", err)
		}
		cfg.Logging = true
	}
	return cfg, nil
}

func envInt(getenv func(string) string, key string, def int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def, fmt.Errorf("%s: expected integer, got %q", key, raw)
	}
	return v, nil
}

// Logger returns a text logger on stderr at the configured level, or nil
// when logging is off.
func (c Config) Logger() *slog.Logger {
	if !c.Logging {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}

// Apply installs the configured logger into the maskfill package.
func (c Config) Apply() {
	maskfill.SetLogger(c.Logger())
}
