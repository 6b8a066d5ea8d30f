package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/covdir/internal/domain"
	"github.com/renato0307/covdir/internal/logging"
	"github.com/renato0307/covdir/internal/ports"
)

// PrefetchCmd warms the snapshot cache for a directory and its subdirectories
type PrefetchCmd struct {
	Revision    string `arg:"" help:"Revision (changeset) to prefetch"`
	Path        string `arg:"" optional:"" help:"Directory within the repository (default: root)"`
	Concurrency int    `help:"Maximum concurrent lookups (default: prefetch_concurrency setting)" default:"0"`
	Refresh     bool   `help:"Re-fetch listings that are already cached"`
}

// Run executes the prefetch command
func (p *PrefetchCmd) Run(cli *CLI) error {
	service := cli.Container.CoverageService
	if !service.CacheEnabled() {
		return fmt.Errorf("nothing to prefetch: %w", domain.ErrCacheDisabled)
	}

	concurrency := p.Concurrency
	if concurrency < 1 {
		concurrency = cli.currentSettings().GetPrefetchConcurrency()
	}
	path := domain.NormalizeDirPath(p.Path)

	logging.Logger.Info("Prefetching coverage",
		"revision", p.Revision,
		"path", path,
		"repo", cli.Repo,
		"concurrency", concurrency,
		"refresh", p.Refresh)

	ctx := context.Background()
	if p.Refresh {
		ctx = ports.WithoutCache(ctx)
	}

	fetched, err := service.Prefetch(ctx, p.Revision, path, cli.Repo, concurrency)
	if err != nil {
		cli.Container.Reporter.Report(ctx, err)
		return fmt.Errorf("prefetch stopped after %d listings: %s", fetched, domain.DescribeError(err))
	}

	fmt.Printf("Cached %d listings for %s at %s\n", fetched, displayPath(path), p.Revision)
	return nil
}

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
