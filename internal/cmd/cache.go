package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/renato0307/covdir/internal/domain"
)

// CacheCmd manages the snapshot cache
type CacheCmd struct {
	Clear CacheClearCmd `cmd:"clear" help:"Remove every cached snapshot"`
	List  CacheListCmd  `cmd:"list" help:"List cached snapshots" default:"1"`
}

// CacheListCmd lists cached snapshots
type CacheListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// CacheClearCmd empties the cache
type CacheClearCmd struct{}

type cachedSnapshot struct {
	Entries   int       `json:"entries"`
	FetchedAt time.Time `json:"fetched_at"`
	Path      string    `json:"path"`
	Repo      string    `json:"repo"`
	Revision  string    `json:"revision"`
}

// Run executes the list command
func (c *CacheListCmd) Run(cli *CLI) error {
	summaries, err := cli.Container.CoverageService.ListCached(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list cache: %w", err)
	}
	return renderCacheList(os.Stdout, summaries, c.Format)
}

func renderCacheList(w io.Writer, summaries []domain.SnapshotSummary, format string) error {
	if format == "json" {
		output := make([]cachedSnapshot, 0, len(summaries))
		for _, s := range summaries {
			output = append(output, cachedSnapshot{
				Entries:   s.Entries,
				FetchedAt: s.FetchedAt,
				Path:      s.Key.Path,
				Repo:      s.Key.RepoSource,
				Revision:  s.Key.Revision,
			})
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	if len(summaries) == 0 {
		fmt.Fprintln(w, "Cache is empty")
		return nil
	}

	printer := message.NewPrinter(language.English)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"REPO", "REVISION", "PATH", "ENTRIES", "FETCHED"})
	entries := 0
	for _, s := range summaries {
		entries += s.Entries
		tw.AppendRow(table.Row{
			s.Key.RepoSource,
			s.Key.Revision,
			displayPath(s.Key.Path),
			printer.Sprintf("%d", s.Entries),
			s.FetchedAt.Local().Format(time.DateTime),
		})
	}
	tw.AppendFooter(table.Row{"", "", "TOTAL", printer.Sprintf("%d", entries), ""})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignLeft},
	})
	tw.SetStyle(table.StyleLight)
	tw.Render()
	return nil
}

// Run executes the clear command
func (c *CacheClearCmd) Run(cli *CLI) error {
	removed, err := cli.Container.CoverageService.ClearCache(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d cached snapshots\n", removed)
	return nil
}
