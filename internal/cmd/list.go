package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/renato0307/covdir/internal/domain"
	"github.com/renato0307/covdir/internal/logging"
	"github.com/renato0307/covdir/internal/ui"
)

// ListCmd prints the normalized coverage listing of one directory
type ListCmd struct {
	Revision string `arg:"" help:"Revision (changeset) to inspect"`
	Path     string `arg:"" optional:"" help:"Directory within the repository (default: root)"`
	Format   string `help:"Output format: table, json or links" enum:"table,json,links" default:"table"`
}

type listEntry struct {
	Covered     int    `json:"covered"`
	IsDirectory bool   `json:"is_directory"`
	Link        string `json:"link"`
	Name        string `json:"name"`
	Percent     *int   `json:"percent"`
	Uncovered   int    `json:"uncovered"`
}

type listOutput struct {
	Entries    []listEntry `json:"entries"`
	Path       string      `json:"path"`
	RepoSource string      `json:"repo"`
	Revision   string      `json:"revision"`
}

// Run executes the list command
func (l *ListCmd) Run(cli *CLI) error {
	path := domain.NormalizeDirPath(l.Path)
	controller := cli.Container.NewFetchController(cli.Repo)

	err := controller.FetchData(context.Background(), l.Revision, path, cli.Repo)
	state := controller.State()
	if state.Phase == ui.PhaseError {
		logging.Logger.Debug("List ended in error", "error", err, "message", state.Err)
		return errors.New(state.Err)
	}

	return renderListing(os.Stdout, state, l.Format)
}

func renderListing(w io.Writer, state ui.ViewState, format string) error {
	switch format {
	case "json":
		return renderListingJSON(w, state)
	case "links":
		for _, r := range state.Coverage {
			fmt.Fprintln(w, domain.EntryLink(state.Revision, state.Path, r))
		}
		return nil
	default:
		renderListingTable(w, state)
		return nil
	}
}

func renderListingJSON(w io.Writer, state ui.ViewState) error {
	output := listOutput{
		Entries:    make([]listEntry, 0, len(state.Coverage)),
		Path:       state.Path,
		RepoSource: state.RepoSource,
		Revision:   state.Revision,
	}
	for _, r := range state.Coverage {
		entry := listEntry{
			Covered:     r.Covered,
			IsDirectory: r.IsDirectory,
			Link:        domain.EntryLink(state.Revision, state.Path, r),
			Name:        r.Name,
			Uncovered:   r.Uncovered,
		}
		if percent, ok := domain.Percent(r); ok {
			entry.Percent = &percent
		}
		output.Entries = append(output.Entries, entry)
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func renderListingTable(w io.Writer, state ui.ViewState) {
	path := state.Path
	if path == "" {
		path = "/"
	}
	fmt.Fprintf(w, "Revision: %s (%s)\nPath: %s\n\n", state.Revision, state.RepoSource, path)

	if len(state.Coverage) == 0 {
		fmt.Fprintln(w, "No entries in this directory")
		return
	}

	printer := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Covered", "Uncovered", "Coverage"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	var total domain.CoverageRecord
	for _, r := range state.Coverage {
		name := r.Name
		if r.IsDirectory {
			name += "/"
		}
		table.Append([]string{
			name,
			printer.Sprintf("%d", r.Covered),
			printer.Sprintf("%d", r.Uncovered),
			domain.FormatPercent(r),
		})
		total.Covered += r.Covered
		total.Uncovered += r.Uncovered
	}

	table.SetFooter([]string{
		printer.Sprintf("%d entries", len(state.Coverage)),
		printer.Sprintf("%d", total.Covered),
		printer.Sprintf("%d", total.Uncovered),
		domain.FormatPercent(total),
	})

	table.Render()
}
