package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	Server     ServerConfig
	Extraction ExtractionConfig
	OCR        OCRConfig
	Log        LogConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port string
}

// ExtractionConfig holds the direct text extraction tolerances, in points.
type ExtractionConfig struct {
	XTolerance float64
	YTolerance float64
}

// OCRConfig holds OCR engine settings.
type OCRConfig struct {
	Language string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	xTol, err := getFloat("PDF_X_TOLERANCE", 2)
	if err != nil {
		return nil, err
	}
	yTol, err := getFloat("PDF_Y_TOLERANCE", 3)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8000"),
		},
		Extraction: ExtractionConfig{
			XTolerance: xTol,
			YTolerance: yTol,
		},
		OCR: OCRConfig{
			Language: getEnv("OCR_LANGUAGE", "eng"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %v", key, v)
	}
	return v, nil
}
