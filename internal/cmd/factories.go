package cmd

import (
	"time"

	"github.com/renato0307/covdir/internal/adapters/activedata"
	"github.com/renato0307/covdir/internal/adapters/reporter"
	adapterstorage "github.com/renato0307/covdir/internal/adapters/storage"
	"github.com/renato0307/covdir/internal/config"
	"github.com/renato0307/covdir/internal/logging"
	"github.com/renato0307/covdir/internal/ports"
	"github.com/renato0307/covdir/internal/services"
	"github.com/renato0307/covdir/internal/ui"
)

// ContainerConfig carries the resolved CLI settings the adapters need
type ContainerConfig struct {
	CacheEnabled bool
	CacheMaxAge  time.Duration
	Endpoint     string
	Timeout      time.Duration
}

// Container holds all dependencies for the application
type Container struct {
	// Services
	CoverageService *services.CoverageService

	// Adapters
	Reporter ports.ErrorReporter

	timeout time.Duration
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(cfg ContainerConfig) (*Container, error) {
	remote := activedata.NewClient(cfg.Endpoint, cfg.Timeout)

	// Left as a nil interface when disabled so the service skips the cache
	var cache ports.SnapshotRepository
	if cfg.CacheEnabled {
		repo, err := adapterstorage.NewSQLiteRepository(config.GetCachePath())
		if err != nil {
			return nil, err
		}
		cache = repo
	}

	logging.Logger.Debug("Container created",
		"endpoint", remote.Endpoint(),
		"cache_enabled", cache != nil)

	return &Container{
		CoverageService: services.NewCoverageService(remote, cache, cfg.CacheMaxAge),
		Reporter:        reporter.NewLogReporter(),
		timeout:         cfg.Timeout,
	}, nil
}

// NewFetchController builds a controller for one view over the coverage service
func (c *Container) NewFetchController(repoSource string) *ui.FetchController {
	return ui.NewFetchController(c.CoverageService, c.Reporter, repoSource, c.timeout)
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.CoverageService == nil {
		return nil
	}
	return c.CoverageService.Close()
}
