package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	// Reference document
	PDFPath string

	// Llama 2 endpoint
	LlamaEndpoint string
	LlamaTimeout  time.Duration

	// Observability
	OTLPEndpoint        string
	ServiceName         string
	PromptTokenEncoding string // tiktoken encoding name, empty uses the chars/4 estimate
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		Port:    getEnv("PORT", "5000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		PDFPath: getEnv("PDF_PATH", "pdfs/SAMHSA.pdf"),

		LlamaEndpoint: getEnv("LLAMA2_ENDPOINT", "https://llama2chatbotrender.onrender.com"),
		LlamaTimeout:  time.Duration(getEnvInt("LLAMA2_TIMEOUT_SECONDS", 10)) * time.Second,

		OTLPEndpoint:        getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:         getEnv("OTEL_SERVICE_NAME", "opioid-chatbot"),
		PromptTokenEncoding: getEnv("PROMPT_TOKEN_ENCODING", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the fields that would otherwise fail on the first request.
func (c *Config) Validate() error {
	u, err := url.Parse(c.LlamaEndpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("LLAMA2_ENDPOINT must be an absolute URL, got %q", c.LlamaEndpoint)
	}

	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port)
	}

	if c.LlamaTimeout <= 0 {
		return fmt.Errorf("LLAMA2_TIMEOUT_SECONDS must be positive")
	}

	if c.PDFPath == "" {
		return fmt.Errorf("PDF_PATH is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
