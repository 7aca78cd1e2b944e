package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPListenAddr        string
	CertificateServiceURL string
	UniversityServiceURL  string
	CollaboratorTimeout   time.Duration
	AuthorityCacheTTL     time.Duration
	// DatabaseURL is optional. When empty the verification audit log
	// and the /history endpoint are disabled.
	DatabaseURL        string
	LogLevel           string
	ServiceName        string
	RateLimitRPS       float64
	RateLimitBurst     int
	BulkMaxConcurrency int
}

func Load() (*Config, error) {
	collabTimeout, err := time.ParseDuration(getEnv("COLLABORATOR_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("parse COLLABORATOR_TIMEOUT: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("AUTHORITY_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("parse AUTHORITY_CACHE_TTL: %w", err)
	}
	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64)
	if err != nil {
		return nil, fmt.Errorf("parse RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "40"))
	if err != nil {
		return nil, fmt.Errorf("parse RATE_LIMIT_BURST: %w", err)
	}
	bulkJobs, err := strconv.Atoi(getEnv("BULK_MAX_CONCURRENCY", "0"))
	if err != nil {
		return nil, fmt.Errorf("parse BULK_MAX_CONCURRENCY: %w", err)
	}

	cfg := &Config{
		HTTPListenAddr:        getEnv("HTTP_LISTEN_ADDR", ":8085"),
		CertificateServiceURL: getEnv("CERTIFICATE_SERVICE_URL", ""),
		UniversityServiceURL:  getEnv("UNIVERSITY_SERVICE_URL", ""),
		CollaboratorTimeout:   collabTimeout,
		AuthorityCacheTTL:     cacheTTL,
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		ServiceName:           getEnv("SERVICE_NAME", "verification-service"),
		RateLimitRPS:          rps,
		RateLimitBurst:        burst,
		BulkMaxConcurrency:    bulkJobs,
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var missing []string
	if c.CertificateServiceURL == "" {
		missing = append(missing, "CERTIFICATE_SERVICE_URL")
	}
	if c.UniversityServiceURL == "" {
		missing = append(missing, "UNIVERSITY_SERVICE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
