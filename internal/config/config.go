// Package config loads server settings from flags, BOOKS_* environment
// variables and .env files.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix = "BOOKS"

	DefaultPort      = 83
	DefaultLogFile   = "./aws-books.log"
	DefaultLogLevel  = "info"
	DefaultDataFile  = "./data.csv"
	DefaultRateBurst = 5
)

// Config holds the server configuration.
type Config struct {
	Port        int     // listening port
	LogFile     string  // log destination, "-" for stderr
	LogLevel    string  // debug, info, warn or error
	DataFile    string  // flat-file collection path
	DatabaseDSN string  // selects the postgres store when set
	RateLimit   float64 // requests per second per client, 0 disables
	RateBurst   int
	TrustProxy  bool // key the rate limit on X-Forwarded-For
}

// Addr returns the listen address for http.Server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// UsePostgres reports whether the postgres store is configured.
func (c *Config) UsePostgres() bool {
	return c.DatabaseDSN != ""
}

// LoadEnvFiles reads .env and .env.local into the process environment.
// Variables already set by the runtime are never overridden.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// NewViper returns a viper instance reading BOOKS_* variables, so the key
// "db-dsn" is read from BOOKS_DB_DSN.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", DefaultPort)
	v.SetDefault("log", DefaultLogFile)
	v.SetDefault("log-level", DefaultLogLevel)
	v.SetDefault("data", DefaultDataFile)
	v.SetDefault("db-dsn", "")
	v.SetDefault("rate-limit", 0.0)
	v.SetDefault("rate-burst", DefaultRateBurst)
	v.SetDefault("trust-proxy", false)
	return v
}

// BindFlags registers the server flags on fs and binds them to v.
// A flag given on the command line wins over the environment.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.IntP("port", "p", DefaultPort, "Port where the server will be listening")
	fs.StringP("log", "l", DefaultLogFile, "File to write log to (- for stderr)")
	fs.String("log-level", DefaultLogLevel, "Log level: debug, info, warn, error")
	fs.StringP("data", "d", DefaultDataFile, "CSV file holding the finished books")
	fs.String("db-dsn", "", "PostgreSQL DSN; when set, books are stored in the database instead of the CSV file")
	fs.Float64("rate-limit", 0, "Requests per second allowed per client (0 disables)")
	fs.Int("rate-burst", DefaultRateBurst, "Burst size for the per-client rate limit")
	fs.Bool("trust-proxy", false, "Identify rate-limited clients by the first X-Forwarded-For entry (only behind a trusted proxy)")
	return v.BindPFlags(fs)
}

// Load builds and validates a Config from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:        v.GetInt("port"),
		LogFile:     v.GetString("log"),
		LogLevel:    v.GetString("log-level"),
		DataFile:    v.GetString("data"),
		DatabaseDSN: v.GetString("db-dsn"),
		RateLimit:   v.GetFloat64("rate-limit"),
		RateBurst:   v.GetInt("rate-burst"),
		TrustProxy:  v.GetBool("trust-proxy"),
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if !cfg.UsePostgres() && cfg.DataFile == "" {
		return nil, fmt.Errorf("data file path is required")
	}
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("invalid rate limit %v", cfg.RateLimit)
	}
	if cfg.RateLimit > 0 && cfg.RateBurst < 1 {
		return nil, fmt.Errorf("invalid rate burst %d", cfg.RateBurst)
	}
	return cfg, nil
}

// RedactDSN hides the password part of a postgres DSN for logging.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
