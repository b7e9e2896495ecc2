package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	defaultDatabaseDSN = "host=localhost user=postgres password=postgres dbname=financeiro port=5432 sslmode=disable"
	defaultCORSOrigins = "http://localhost:5173"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	StoreDriver string // postgres | memory
	JWTSecret   string
	CORSOrigins string
	LogLevel    string

	ReportDir          string        // raiz dos diretórios PDF/ e CSV/
	ReportMaxAge       time.Duration // arquivos mais antigos que isso são removidos pelo sweeper
	ReportSweepMinutes uint64

	// Avisos coletados durante o Load, logados pelo main depois que o logger existe.
	Warnings []string
}

// Load lê a configuração do ambiente. Um arquivo .env no diretório atual é
// carregado antes, se existir.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", defaultDatabaseDSN),
		StoreDriver: getEnv("STORE_DRIVER", StoreDriverPostgres),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ReportDir:   getEnv("REPORT_DIR", "./reports"),
	}

	maxAge, err := time.ParseDuration(getEnv("REPORT_MAX_AGE", "15m"))
	if err != nil || maxAge <= 0 {
		return nil, fmt.Errorf("REPORT_MAX_AGE inválido: %q", os.Getenv("REPORT_MAX_AGE"))
	}
	cfg.ReportMaxAge = maxAge

	sweep, err := strconv.ParseUint(getEnv("REPORT_SWEEP_MINUTES", "10"), 10, 64)
	if err != nil || sweep == 0 {
		return nil, fmt.Errorf("REPORT_SWEEP_MINUTES inválido: %q", os.Getenv("REPORT_SWEEP_MINUTES"))
	}
	cfg.ReportSweepMinutes = sweep

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET não definido")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET deve ter pelo menos 32 caracteres")
	}
	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER desconhecido: %q", c.StoreDriver)
	}

	if c.StoreDriver == StoreDriverPostgres && c.DatabaseDSN == defaultDatabaseDSN {
		c.Warnings = append(c.Warnings, "DATABASE_DSN usando valor padrão, defina a conexão do Postgres em produção")
	}
	if c.CORSOrigins == defaultCORSOrigins {
		c.Warnings = append(c.Warnings, "CORS_ALLOWED_ORIGINS usando valor padrão, defina o domínio em produção")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
