// Package config loads runtime settings from the environment. A .env file
// in the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	MongoURI      string        `conf:"env:MONGO_URI,mask"`
	DBName        string        `conf:"default:elearning,env:DB_NAME"`
	JWTSecret     string        `conf:"env:JWT_SECRET,mask"`
	JWTExpiresIn  string        `conf:"default:7d,env:JWT_EXPIRES_IN"`
	Port          string        `conf:"default:5000,env:PORT"`
	StoreDriver   string        `conf:"default:mongo,env:STORE_DRIVER"`
	SeedCatalogue bool          `conf:"default:true,env:SEED_CATALOGUE"`
	UploadDir     string        `conf:"default:uploads,env:UPLOAD_DIR"`
	MaxFileSize   int64         `conf:"default:5242880,env:MAX_FILE_SIZE"`
	BcryptCost    int           `conf:"default:10,env:BCRYPT_COST"`
	AuthRateLimit float64       `conf:"default:1,env:AUTH_RATE_LIMIT"`
	AuthRateBurst int           `conf:"default:10,env:AUTH_RATE_BURST"`
	ShutdownTime  time.Duration `conf:"default:20s,env:SHUTDOWN_TIMEOUT"`
	ReadTimeout   time.Duration `conf:"default:10s,env:READ_TIMEOUT"`
	WriteTimeout  time.Duration `conf:"default:30s,env:WRITE_TIMEOUT"`

	// TokenTTL is JWTExpiresIn parsed by Load.
	TokenTTL time.Duration `conf:"-"`
}

// Load reads .env (if any) and parses the environment into a Config.
// It returns conf.ErrHelpWanted with the usage text when --help is passed.
func Load() (Config, string, error) {
	_ = godotenv.Load()

	var cfg Config
	help, err := conf.Parse("", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			return cfg, help, err
		}
		return cfg, "", fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.finish(); err != nil {
		return cfg, "", err
	}
	return cfg, "", nil
}

func (c *Config) finish() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case DriverMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			return errors.New("MONGO_URI is required when STORE_DRIVER is mongo")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q, use %q or %q", c.StoreDriver, DriverMongo, DriverMemory)
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required")
	}

	ttl, err := ParseTTL(c.JWTExpiresIn)
	if err != nil {
		return fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}
	c.TokenTTL = ttl
	return nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// ParseTTL accepts Go durations ("12h", "90m"), a day count ("7d") or a
// plain number of seconds.
func ParseTTL(raw string) (time.Duration, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, errors.New("empty duration")
	}

	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", raw)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	if n, err := strconv.Atoi(value); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("invalid duration %q", raw)
		}
		return time.Duration(n) * time.Second, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	return d, nil
}
