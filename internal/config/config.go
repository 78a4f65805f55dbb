package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrAPIURLMissing    = errors.New("environment variable API_URL must be set")
	ErrJWTSecretMissing = errors.New("environment variable JWT_SECRET must be set")
)

// Config is the runtime configuration of the backend.
type Config struct {
	APIURL           *url.URL // External URL of the API, used for links
	GinMode          string
	LogFormat        string // "human" or "json". Empty selects by gin mode
	CORSAllowOrigins []string
	EnablePprof      bool

	DBPath     string // SQLite database file, used if DBHost is empty
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret []byte

	AMQPURL      string // Limit breach notifications are only published when this is set
	AMQPExchange string

	InvestmentPatterns []string
}

func defaults(v *viper.Viper) {
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("DB_PATH", "data/gorm.db")
	v.SetDefault("DB_NAME", "pocket_ledger")
	v.SetDefault("ENABLE_PPROF", false)
	v.SetDefault("AMQP_EXCHANGE", "finance")
	v.SetDefault("INVESTMENT_PATTERNS", "*invest*,*інвестиці*")
}

// Load reads the configuration from the environment. Variables
// from a .env file in the working directory are loaded first, but
// never override variables that are already set.
func Load() (Config, error) {
	// The .env file is optional
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	defaults(v)

	apiURL := v.GetString("API_URL")
	if apiURL == "" {
		return Config{}, ErrAPIURLMissing
	}

	parsed, err := url.Parse(apiURL)
	if err != nil {
		return Config{}, fmt.Errorf("environment variable API_URL must be a valid URL: %w", err)
	}

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return Config{}, ErrJWTSecretMissing
	}

	return Config{
		APIURL:             parsed,
		GinMode:            v.GetString("GIN_MODE"),
		LogFormat:          v.GetString("LOG_FORMAT"),
		CORSAllowOrigins:   strings.Fields(v.GetString("CORS_ALLOW_ORIGINS")),
		EnablePprof:        v.GetBool("ENABLE_PPROF"),
		DBPath:             v.GetString("DB_PATH"),
		DBHost:             v.GetString("DB_HOST"),
		DBUser:             v.GetString("DB_USER"),
		DBPassword:         v.GetString("DB_PASSWORD"),
		DBName:             v.GetString("DB_NAME"),
		JWTSecret:          []byte(secret),
		AMQPURL:            v.GetString("AMQP_URL"),
		AMQPExchange:       v.GetString("AMQP_EXCHANGE"),
		InvestmentPatterns: splitList(v.GetString("INVESTMENT_PATTERNS")),
	}, nil
}

// PostgresDSN returns the connection URL for PostgreSQL.
//
// Credentials are escaped, so they may contain any character.
func (c Config) PostgresDSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}

	return dsn.String()
}

// UsePostgres reports if PostgreSQL is configured instead of SQLite.
func (c Config) UsePostgres() bool {
	return c.DBHost != ""
}

func splitList(s string) []string {
	var list []string
	for _, e := range strings.Split(s, ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			list = append(list, e)
		}
	}

	return list
}
