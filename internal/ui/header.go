package ui

import (
	"fmt"
	"strings"

	"github.com/renato0307/covdir/internal/theme"
	"github.com/renato0307/covdir/internal/version"
)

// renderHeader renders the app name, with build info in dev builds, and the tagline
func renderHeader() string {
	appNameLine := theme.AppNameStyle.Render("covdir")
	if version.Version == "dev" {
		commit := version.Commit
		if len(commit) > 7 {
			commit = commit[:7] // Short commit hash
		}
		appNameLine += theme.VersionStyle.Render(fmt.Sprintf(" %s | %s", version.Version, commit))
	}
	return appNameLine + "\n" + theme.SubtitleStyle.Render(version.Tagline)
}

// renderMetaPanel renders the directory metadata. It is shown whatever the
// fetch outcome so the user always sees which view they are on.
func renderMetaPanel(state ViewState, spinnerView string, width int) string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("Directory Coverage"))
	b.WriteString("\n")

	b.WriteString(theme.MetaLabelStyle.Render("Coverage: "))
	switch state.Phase {
	case PhaseReady:
		b.WriteString(theme.LoadedStyle.Render("✔"))
	case PhaseLoading:
		b.WriteString(theme.LoadingStyle.Render(spinnerView + " …"))
	default:
		b.WriteString(theme.LoadingStyle.Render("…"))
	}
	b.WriteString("\n")

	if state.Err != "" {
		b.WriteString(theme.ErrorStyle.Render(formatErrorForDisplay(state.Err, width-4)))
		b.WriteString("\n")
	}

	path := state.Path
	if path == "" {
		path = "/"
	}
	b.WriteString(theme.MetaLabelStyle.Render("Path: "))
	b.WriteString(theme.MetaValueStyle.Render(path))
	b.WriteString("\n")

	revision := state.Revision
	if revision == "" {
		revision = "-"
	}
	b.WriteString(theme.MetaLabelStyle.Render("Revision: "))
	b.WriteString(theme.MetaValueStyle.Render(revision))
	b.WriteString(theme.MetaLabelStyle.Render(" (" + state.RepoSource + ")"))

	return theme.MetaPanelStyle.Render(b.String())
}
