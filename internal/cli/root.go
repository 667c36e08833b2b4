package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"quickstart/internal/config"
	"quickstart/internal/logging"
)

var (
	StartTime time.Time

	// Global config object populated by flags/env/file
	cfg *config.Config

	// Flags
	cfgFile   string
	port      int
	host      string
	logLevel  string
	dbPath    string
	schemaDir string
	debugMode bool
)

// RootCmd represents the base command when called without any subcommands.
// It starts the HTTP server.
var RootCmd = &cobra.Command{
	Use:   "quickstart",
	Short: "Kometa Quickstart API",
	Long:  `A guided setup wizard that walks through configuring Kometa and produces a validated config.yml.`,
	// PersistentPreRunE loads the configuration before any command runs.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	StartTime = time.Now()

	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config_path", "config.toml", "Path to the base configuration file. (Env: QS_CONFIG_PATH)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Logging level (debug, info, warn, error). (Env: QS_LOG_LEVEL)")

	// Server-specific flags
	RootCmd.Flags().StringVar(&host, "host", "", "Bind address for the HTTP server. (Env: QS_HOST)")
	RootCmd.Flags().IntVar(&port, "port", 0, "Port for the HTTP server. (Env: QS_PORT)")
	RootCmd.Flags().StringVar(&dbPath, "database-path", "", "Path to the SQLite section store. (Env: QS_DATABASE_PATH)")
	RootCmd.Flags().StringVar(&schemaDir, "schema-dir", "", "Directory for mirrored schema files. (Env: QS_SCHEMA_DIR)")
	RootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug behavior. (Env: QS_DEBUG=true)")
}

// initializeConfig loads and overrides configuration values.
func initializeConfig(cmd *cobra.Command) error {
	if envPath := os.Getenv("QS_CONFIG_PATH"); envPath != "" && cfgFile == "config.toml" {
		cfgFile = envPath
	}

	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Rely on defaults and flags when no file exists
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	applyOverrides(cfg, cmd)

	logging.Init(cfg.Logging.Level)

	return nil
}

func applyOverrides(c *config.Config, cmd *cobra.Command) {
	// --- 1. Environment Variables ---
	if v := os.Getenv("QS_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("QS_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("QS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("QS_DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("QS_SCHEMA_DIR"); v != "" {
		c.Schema.Dir = v
	}
	if v := os.Getenv("QS_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}

	// --- 2. CLI Flags (Take precedence) ---
	if host != "" {
		c.Server.Host = host
	}
	if port != 0 {
		c.Server.Port = port
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if dbPath != "" {
		c.Database.Path = dbPath
	}
	if schemaDir != "" {
		c.Schema.Dir = schemaDir
	}
	if cmd.Flags().Changed("debug") {
		c.Debug = debugMode
	}

	// --- 3. Defaults ---
	c.ApplyDefaults()
}
