package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables.
//
// Recognized variables:
//
//	ADDRESS              HTTP bind address (e.g., ":5000")
//	DATABASE_URL         PostgreSQL DSN
//	HUGGINGFACE_API_KEY  inference credential
//	HF_BASE_URL          inference endpoint base URL
//	HF_EMBEDDING_MODEL   embedding model identifier
//	HF_SENTIMENT_MODEL   sentiment model identifier
//	HF_TIMEOUT_SECONDS   outbound inference call timeout, seconds
//
// Unset variables leave the current value untouched.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_URL"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("HUGGINGFACE_API_KEY"); ok {
		config.HFAPIKey = v
	}
	if v, ok := os.LookupEnv("HF_BASE_URL"); ok {
		config.HFBaseURL = v
	}
	if v, ok := os.LookupEnv("HF_EMBEDDING_MODEL"); ok {
		config.EmbeddingModel = v
	}
	if v, ok := os.LookupEnv("HF_SENTIMENT_MODEL"); ok {
		config.SentimentModel = v
	}
	if v, ok := os.LookupEnv("HF_TIMEOUT_SECONDS"); ok {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			config.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
}
