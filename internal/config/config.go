package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultPort          = 8080
	DefaultHost          = "127.0.0.1"
	DefaultLogLevel      = "info"
	DefaultMaxUploadSize = 16 * 1024 * 1024 // 16MB

	// Signature scanning bounds
	DefaultSignaturePageCap = 10
	DefaultSignatureBudget  = 5 * time.Second

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the intake form server
type Config struct {
	// Server configuration
	Host string
	Port int

	// Upload handling
	UploadDir     string
	MaxUploadSize int64 // Maximum uploaded PDF size in bytes

	// Reference data
	SupportItemsCSV string
	StaffCSVWA      string
	StaffCSVNSW     string

	// Signature extraction (disabled by default; scanning is bounded by a
	// page cap and a time budget)
	SignatureScan    bool
	SignaturePageCap int
	SignatureBudget  time.Duration

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Host:             DefaultHost,
		Port:             DefaultPort,
		UploadDir:        filepath.Join(currentDir, "uploads"),
		MaxUploadSize:    DefaultMaxUploadSize,
		SupportItemsCSV:  filepath.Join(currentDir, "refdata", "support_items.csv"),
		StaffCSVWA:       filepath.Join(currentDir, "refdata", "active_staff_wa.csv"),
		StaffCSVNSW:      filepath.Join(currentDir, "refdata", "active_staff_nsw.csv"),
		SignatureScan:    false,
		SignaturePageCap: DefaultSignaturePageCap,
		SignatureBudget:  DefaultSignatureBudget,
		Version:          "1.0.0",
		ServerName:       "intake-server",
		LogLevel:         DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.UploadDir != "" {
		if expandedPath, err := filepath.Abs(cfg.UploadDir); err == nil {
			cfg.UploadDir = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("INTAKE")
	viper.AutomaticEnv()

	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("uploaddir", cfg.UploadDir)
	viper.SetDefault("maxuploadsize", cfg.MaxUploadSize)
	viper.SetDefault("supportitems", cfg.SupportItemsCSV)
	viper.SetDefault("staffwa", cfg.StaffCSVWA)
	viper.SetDefault("staffnsw", cfg.StaffCSVNSW)
	viper.SetDefault("signaturescan", cfg.SignatureScan)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("host", cfg.Host, "Server host address")
	pflag.Int("port", cfg.Port, "Server port")
	pflag.String("uploaddir", cfg.UploadDir, "Scratch directory for uploads and generated outputs")
	pflag.Int64("maxuploadsize", cfg.MaxUploadSize, "Maximum uploaded PDF size in bytes")
	pflag.String("supportitems", cfg.SupportItemsCSV, "Path to the support items price CSV")
	pflag.String("staffwa", cfg.StaffCSVWA, "Path to the WA active staff CSV")
	pflag.String("staffnsw", cfg.StaffCSVNSW, "Path to the NSW active staff CSV")
	pflag.Bool("signaturescan", cfg.SignatureScan, "Enable bounded signature image extraction")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("uploaddir", pflag.Lookup("uploaddir"))
	_ = viper.BindPFlag("maxuploadsize", pflag.Lookup("maxuploadsize"))
	_ = viper.BindPFlag("supportitems", pflag.Lookup("supportitems"))
	_ = viper.BindPFlag("staffwa", pflag.Lookup("staffwa"))
	_ = viper.BindPFlag("staffnsw", pflag.Lookup("staffnsw"))
	_ = viper.BindPFlag("signaturescan", pflag.Lookup("signaturescan"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.UploadDir = viper.GetString("uploaddir")
	cfg.MaxUploadSize = viper.GetInt64("maxuploadsize")
	cfg.SupportItemsCSV = viper.GetString("supportitems")
	cfg.StaffCSVWA = viper.GetString("staffwa")
	cfg.StaffCSVNSW = viper.GetString("staffnsw")
	cfg.SignatureScan = viper.GetBool("signaturescan")
	cfg.LogLevel = viper.GetString("loglevel")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	if c.UploadDir == "" {
		return errors.New("upload directory cannot be empty")
	}

	// Check if the upload directory exists, create if it doesn't
	if _, err := os.Stat(c.UploadDir); os.IsNotExist(err) {
		if err := os.MkdirAll(c.UploadDir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create upload directory %s: %w", c.UploadDir, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access upload directory %s: %w", c.UploadDir, err)
	}

	if c.MaxUploadSize <= 0 {
		return errors.New("maximum upload size must be positive")
	}

	if c.SignaturePageCap <= 0 {
		return errors.New("signature page cap must be positive")
	}
	if c.SignatureBudget <= 0 {
		return errors.New("signature time budget must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Host: %s, Port: %d, UploadDir: %s, MaxUploadSize: %d, LogLevel: %s, SignatureScan: %t}",
		c.Host, c.Port, c.UploadDir, c.MaxUploadSize, c.LogLevel, c.SignatureScan)
}
