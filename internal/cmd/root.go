package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/renato0307/covdir/internal/config"
	"github.com/renato0307/covdir/internal/domain"
	"github.com/renato0307/covdir/internal/logging"
)

const defaultTimeout = config.DefaultTimeoutSeconds * time.Second

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Endpoint string        `help:"Coverage service base URL" env:"COVDIR_ENDPOINT"`
	NoCache  bool          `help:"Bypass the local snapshot cache"`
	Repo     string        `help:"Repository (branch) to query" env:"COVDIR_REPO"`
	Timeout  time.Duration `help:"Timeout for each coverage request" default:"30s"`

	Browse   BrowseCmd   `cmd:"" help:"Browse coverage in the TUI (default)" default:"withargs"`
	Cache    CacheCmd    `cmd:"cache" help:"Inspect or clear the snapshot cache"`
	List     ListCmd     `cmd:"list" help:"Print the coverage of one directory"`
	Prefetch PrefetchCmd `cmd:"prefetch" help:"Warm the cache for a directory and its subdirectories"`
	Serve    ServeCmd    `cmd:"serve" help:"Serve the coverage browser over SSH"`
	Settings SettingsCmd `cmd:"settings" help:"Manage settings (meta, set)"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// currentSettings returns the loaded settings, never nil
func (c *CLI) currentSettings() *config.Settings {
	if c.settings == nil {
		return &config.Settings{}
	}
	return c.settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Apply settings with proper precedence: CLI flags > env vars > settings.json > defaults
	// Only apply if flag is at default value and env var is not set
	c.applySettings()

	// Initialize logging first and get the log file path
	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Set environment variables AFTER initialization so child processes inherit debug settings
	if c.Debug || c.DebugFile != "" {
		os.Setenv("COVDIR_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("COVDIR_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != logging.DefaultMaxLogFiles {
		os.Setenv("COVDIR_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	logging.Logger.Debug("CLI configured",
		"endpoint", c.Endpoint,
		"repo", c.Repo,
		"timeout", c.Timeout.String(),
		"no_cache", c.NoCache)

	// Create container AFTER logging is initialized so GORM's logger has a target
	container, err := NewContainer(ContainerConfig{
		CacheEnabled: !c.NoCache,
		CacheMaxAge:  c.currentSettings().CacheMaxAge(),
		Endpoint:     c.Endpoint,
		Timeout:      c.Timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

func (c *CLI) applySettings() {
	settings := c.currentSettings()

	if c.MaxLogFiles == logging.DefaultMaxLogFiles {
		if _, hasEnv := os.LookupEnv("COVDIR_MAX_LOG_FILES"); !hasEnv {
			if settings.MaxLogFiles != nil {
				c.MaxLogFiles = *settings.MaxLogFiles
			}
		}
	}

	if !c.Debug {
		if _, hasEnv := os.LookupEnv("COVDIR_DEBUG"); !hasEnv {
			if settings.Debug != nil && *settings.Debug {
				c.Debug = true
			}
		}
	}

	// kong has already folded COVDIR_ENDPOINT and COVDIR_REPO into the fields
	if c.Endpoint == "" {
		c.Endpoint = settings.Endpoint
	}
	if c.Endpoint == "" {
		c.Endpoint = config.DefaultEndpoint
	}
	c.Endpoint = strings.TrimRight(c.Endpoint, "/")

	if c.Repo == "" {
		c.Repo = settings.DefaultRepo
	}
	if c.Repo == "" {
		c.Repo = domain.DefaultRepoSource
	}

	if c.Timeout == defaultTimeout && settings.TimeoutSeconds != nil {
		c.Timeout = time.Duration(*settings.TimeoutSeconds) * time.Second
	}

	if !c.NoCache && !settings.IsCacheEnabled() {
		c.NoCache = true
	}
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
