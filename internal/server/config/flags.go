package config

import (
	"flag"
	"os"
	"time"

	"github.com/hunterxdhanush/mindful-mentor/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-d string   PostgreSQL DSN
//	-k string   Hugging Face API key
//	-b string   inference endpoint base URL
//	-e string   embedding model identifier
//	-s string   sentiment model identifier
//	-t int      inference call timeout, seconds
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-b", "-e", "-s", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	timeoutSeconds := int(config.RequestTimeout / time.Second)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.HFAPIKey, "k", config.HFAPIKey, "Hugging Face API key")
	fs.StringVar(&config.HFBaseURL, "b", config.HFBaseURL, "inference endpoint base URL")
	fs.StringVar(&config.EmbeddingModel, "e", config.EmbeddingModel, "embedding model identifier")
	fs.StringVar(&config.SentimentModel, "s", config.SentimentModel, "sentiment model identifier")
	fs.IntVar(&timeoutSeconds, "t", timeoutSeconds, "inference call timeout, seconds")

	_ = fs.Parse(args)

	if timeoutSeconds > 0 {
		config.RequestTimeout = time.Duration(timeoutSeconds) * time.Second
	}
}
