package app

import (
	"os"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete storefront configuration, loadable from
// environment variables (TASTY_ prefix), flags, or YAML config files.
type Config struct {
	Backend     string `default:"file" usage:"storage backend: memory, file, or postgres"`
	StorePath   string `default:"storefront.json" usage:"store file path (file backend)" flag:"store-path"`
	DatabaseURL string `usage:"PostgreSQL connection URL (TASTY_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	InvoiceDir  string `default:"invoices" usage:"directory for rendered PDF invoices" flag:"invoice-dir"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "TASTY",
		Files:     []string{"config.yaml", "/etc/tastyflame/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	switch cfg.Backend {
	case "memory", "file":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, errors.New("database URL is required: set TASTY_DATABASE_URL or DATABASE_URL")
		}
	default:
		return nil, errors.Errorf("unknown backend %q: want memory, file, or postgres", cfg.Backend)
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables that use
// standard names like DATABASE_URL to the TASTY_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
}
