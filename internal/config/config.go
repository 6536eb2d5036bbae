package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Mode selects which pipelines a run executes.
type Mode string

const (
	ModeRegional Mode = "regional"
	ModeFacility Mode = "facility"
	ModeAll      Mode = "all"
)

// Regional reports whether the regional spreadsheet pipeline runs.
func (m Mode) Regional() bool { return m == ModeRegional || m == ModeAll }

// Facility reports whether the facility registry pipeline runs.
func (m Mode) Facility() bool { return m == ModeFacility || m == ModeAll }

// Config holds all service settings, populated from flat key=value files
// (db_config.txt, secrets.txt) with environment variables taking precedence.
type Config struct {
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	DBMaxOpenConns int
	DBMaxIdleConns int

	KakaoAPIKey    string
	RegistryUserID string
	RegistryKey    string

	LogLevel  string
	LogFormat string
	HTTPAddr  string

	GeocodeInterval  time.Duration
	GeocodeTimeout   time.Duration
	GeocodeCacheSize int
	RegistryTimeout  time.Duration
}

// Load reads the given config files (missing files are tolerated; the
// environment can supply everything) and validates the keys the selected
// mode requires. A missing required key is fatal for the whole run.
func Load(mode Mode, paths ...string) (*Config, error) {
	var existing []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) > 0 {
		// godotenv never overrides variables already present in the
		// environment, so env values win over file values.
		if err := godotenv.Load(existing...); err != nil {
			return nil, fmt.Errorf("load config files: %w", err)
		}
	}

	dbPort, err := intOrDefault("DB_PORT", 3306)
	if err != nil {
		return nil, err
	}
	maxOpen, err := intOrDefault("DB_MAX_OPEN_CONNS", 5)
	if err != nil {
		return nil, err
	}
	maxIdle, err := intOrDefault("DB_MAX_IDLE_CONNS", 2)
	if err != nil {
		return nil, err
	}
	cacheSize, err := intOrDefault("GEOCODE_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}
	geocodeInterval, err := durationOrDefault("GEOCODE_INTERVAL", 300*time.Millisecond)
	if err != nil {
		return nil, err
	}
	geocodeTimeout, err := durationOrDefault("GEOCODE_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	registryTimeout, err := durationOrDefault("REGISTRY_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     dbPort,
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		DBMaxOpenConns: maxOpen,
		DBMaxIdleConns: maxIdle,

		KakaoAPIKey:    os.Getenv("KAKAO_API_KEY"),
		RegistryUserID: os.Getenv("API_USER_ID"),
		RegistryKey:    os.Getenv("API_KEY"),

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "text"),
		HTTPAddr:  os.Getenv("HTTP_ADDR"),

		GeocodeInterval:  geocodeInterval,
		GeocodeTimeout:   geocodeTimeout,
		GeocodeCacheSize: cacheSize,
		RegistryTimeout:  registryTimeout,
	}

	if err := cfg.validate(mode); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate(mode Mode) error {
	required := [][2]string{
		{"DB_HOST", c.DBHost},
		{"DB_USER", c.DBUser},
		{"DB_PASSWORD", c.DBPassword},
		{"DB_NAME", c.DBName},
	}
	if mode.Facility() {
		required = append(required,
			[2]string{"KAKAO_API_KEY", c.KakaoAPIKey},
			[2]string{"API_USER_ID", c.RegistryUserID},
			[2]string{"API_KEY", c.RegistryKey},
		)
	}
	for _, kv := range required {
		if kv[1] == "" {
			return errors.New(kv[0] + " is required")
		}
	}
	if c.GeocodeInterval < 0 {
		return errors.New("invalid GEOCODE_INTERVAL")
	}
	return nil
}

// DSN renders the MySQL connection string for the configured store.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intOrDefault(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func durationOrDefault(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}
