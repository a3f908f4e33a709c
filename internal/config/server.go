package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type ServerConfig struct {
	Port              string
	ReportPath        string
	ShortInterestPath string
	MaxReportBytes    int64
	// Minimum spacing between accepted report uploads
	UploadInterval time.Duration
}

func LoadServerConfig() (*ServerConfig, error) {
	maxBytesStr := getEnvOrDefault("MAX_REPORT_BYTES", "10485760")
	maxBytes, err := strconv.ParseInt(maxBytesStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_REPORT_BYTES: %s", maxBytesStr)
	}

	uploadIntervalStr := getEnvOrDefault("UPLOAD_MIN_INTERVAL", "2s")
	uploadInterval, err := time.ParseDuration(uploadIntervalStr)
	if err != nil {
		uploadInterval = 2 * time.Second // Default on parse error
	}

	cfg := &ServerConfig{
		Port:              getEnvOrDefault("PORT", "8050"),
		ReportPath:        getEnvOrDefault("REPORT_PATH", "ITM_Analysis_Summary.txt"),
		ShortInterestPath: getEnvOrDefault("SHORT_INTEREST_PATH", "finviz_short.csv"),
		MaxReportBytes:    maxBytes,
		UploadInterval:    uploadInterval,
	}

	// Validate
	if cfg.MaxReportBytes < 1 {
		return nil, fmt.Errorf("invalid MAX_REPORT_BYTES: must be >= 1")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
