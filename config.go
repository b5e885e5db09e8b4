package scenedi

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config is the typed bootstrap configuration, populated from the process
// environment with optional .env overrides.
type Config struct {
	// LogMode selects the zap preset: "dev", "prod", or "off".
	LogMode string

	// Strategy selects the initial injection error strategy: "warn" or
	// "fail".
	Strategy string

	// InspectorAddr, when non-empty, is the listen address the embedding
	// program should serve the inspector handler on.
	InspectorAddr string
}

// LoadConfig reads .env files (if present) and populates a Config from
// SCENEDI_* environment variables. Missing files are not an error; .env is
// a development convenience.
func LoadConfig(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	_ = godotenv.Load(files...)

	return &Config{
		LogMode:       getEnv("SCENEDI_LOG", "off"),
		Strategy:      getEnv("SCENEDI_STRATEGY", "warn"),
		InspectorAddr: getEnv("SCENEDI_INSPECT_ADDR", ""),
	}
}

// BuildLogger constructs the zap logger the config asks for.
func (c *Config) BuildLogger() *zap.Logger {
	switch c.LogMode {
	case "dev":
		log, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		return log
	case "prod":
		log, err := zap.NewProduction()
		if err != nil {
			return zap.NewNop()
		}
		return log
	default:
		return zap.NewNop()
	}
}

// BuildStrategy constructs the configured injection error strategy.
func (c *Config) BuildStrategy(log *zap.Logger) Strategy {
	if c.Strategy == "fail" {
		return &FailStrategy{}
	}
	return &WarnStrategy{Log: log}
}

// NewFromConfig builds a Directory wired per the config: logger, strategy,
// and world attachment.
func NewFromConfig(c *Config, world World) *Directory {
	log := c.BuildLogger()
	return New(
		WithLogger(log),
		WithWorld(world),
		WithStrategy(c.BuildStrategy(log)),
	)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
