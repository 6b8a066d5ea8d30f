package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyDefinition defines the metadata for a key binding.
// All key bindings are defined here as the single source of truth.
type KeyDefinition struct {
	Defaults []string
	Help     string
	Name     string
}

// AllKeyDefinitions lists every binding of the directory view
var AllKeyDefinitions = []KeyDefinition{
	// Navigation keys
	{Name: "down", Defaults: []string{"down", "j"}, Help: "next entry"},
	{Name: "open", Defaults: []string{"enter", "l", "right"}, Help: "open directory"},
	{Name: "parent", Defaults: []string{"backspace", "h", "left"}, Help: "parent directory"},
	{Name: "top", Defaults: []string{"home", "g"}, Help: "first entry"},
	{Name: "bottom", Defaults: []string{"end", "G"}, Help: "last entry"},
	{Name: "up", Defaults: []string{"up", "k"}, Help: "previous entry"},

	// View keys
	{Name: "change_revision", Defaults: []string{"r"}, Help: "change revision"},
	{Name: "refresh", Defaults: []string{"ctrl+r"}, Help: "refresh"},

	// Application keys
	{Name: "help", Defaults: []string{"?"}, Help: "help"},
	{Name: "quit", Defaults: []string{"q", "ctrl+c"}, Help: "quit"},
}

// KeyMap contains the key bindings of the directory view
type KeyMap struct {
	Bottom         key.Binding
	ChangeRevision key.Binding
	Down           key.Binding
	Help           key.Binding
	Open           key.Binding
	Parent         key.Binding
	Quit           key.Binding
	Refresh        key.Binding
	Top            key.Binding
	Up             key.Binding
}

// NewKeyMap builds the KeyMap from AllKeyDefinitions
func NewKeyMap() KeyMap {
	bindings := make(map[string]key.Binding, len(AllKeyDefinitions))
	for _, def := range AllKeyDefinitions {
		bindings[def.Name] = key.NewBinding(
			key.WithKeys(def.Defaults...),
			key.WithHelp(def.Defaults[0], def.Help),
		)
	}

	return KeyMap{
		Bottom:         bindings["bottom"],
		ChangeRevision: bindings["change_revision"],
		Down:           bindings["down"],
		Help:           bindings["help"],
		Open:           bindings["open"],
		Parent:         bindings["parent"],
		Quit:           bindings["quit"],
		Refresh:        bindings["refresh"],
		Top:            bindings["top"],
		Up:             bindings["up"],
	}
}

// ShortHelp returns the bindings shown in the bottom bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Open,
		k.Parent,
		k.ChangeRevision,
		k.Refresh,
		k.Help,
		k.Quit,
	}
}

// FullHelp returns every binding grouped by column
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Open, k.Parent},
		{k.ChangeRevision, k.Refresh},
		{k.Help, k.Quit},
	}
}
