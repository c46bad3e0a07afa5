package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Invoice collection settings
	Invoices InvoicesConfig `yaml:"invoices"`

	// Terminal UI settings
	UI UIConfig `yaml:"ui"`

	// Sender address used to prefill new invoices
	Sender SenderConfig `yaml:"sender"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to encrypted SQLite database
}

type InvoicesConfig struct {
	PageSize            int `yaml:"page_size"`              // Invoices per page
	DefaultPaymentTerms int `yaml:"default_payment_terms"`  // Days until payment due
	LoadDelayMillis     int `yaml:"load_delay_millis"`      // Simulated fetch latency for load-more
}

type UIConfig struct {
	Theme    string `yaml:"theme"`    // "light" or "dark"
	Currency string `yaml:"currency"` // Currency symbol for amounts
}

type SenderConfig struct {
	Street   string `yaml:"street"`
	City     string `yaml:"city"`
	PostCode string `yaml:"post_code"`
	Country  string `yaml:"country"`
}

// DefaultConfigPath returns ~/.config/billfold/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "billfold", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "billfold", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(homeDir, ".config", "billfold", "billfold.db"),
		},
		Invoices: InvoicesConfig{
			PageSize:            10,
			DefaultPaymentTerms: 30,
			LoadDelayMillis:     500,
		},
		UI: UIConfig{
			Theme:    "dark",
			Currency: "£",
		},
		Sender: SenderConfig{},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (for the database file)
func (c *Config) EnsureDirectories() error {
	dbDir := filepath.Dir(c.Database.Path)
	return os.MkdirAll(dbDir, 0755)
}
