package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/covdir/internal/domain"
	"github.com/renato0307/covdir/internal/ports/mocks"
	"github.com/renato0307/covdir/internal/services"
)

func newTestModel(t *testing.T, revision, path string) *Model {
	t.Helper()
	controller := NewFetchController(mocks.NewMockCoverageLookup(t), mocks.NewMockErrorReporter(t), "", 0)
	return NewModel(controller, domain.DefaultThresholds(), revision, path)
}

func deliver(m *Model, records []domain.CoverageRecord) {
	state := m.controller.State()
	m.Update(CoverageFetchedMsg{Result: FetchResult{
		Records: domain.Normalize(records),
		Request: FetchRequest{
			Generation: m.controller.Generation(),
			Path:       state.Path,
			RepoSource: state.RepoSource,
			Revision:   state.Revision,
		},
	}})
}

func TestModel_InitWithoutRevisionShowsError(t *testing.T) {
	m := newTestModel(t, "", "")

	cmd := m.Init()

	assert.Nil(t, cmd)
	view := m.View()
	assert.Contains(t, view, "Directory Coverage")
	assert.Contains(t, view, "revision is required")
	assert.NotContains(t, view, "File")
}

func TestModel_RendersListingAfterFetch(t *testing.T) {
	m := newTestModel(t, "abc123", "dom")
	require.NotNil(t, m.Init())
	assert.Equal(t, "dom/", m.State().Path)

	deliver(m, []domain.CoverageRecord{
		{Name: "b.js", Covered: 8, Uncovered: 2},
		{Name: "base", IsDirectory: true, Covered: 5, Uncovered: 5},
		{Name: "empty.js"},
	})

	view := m.View()
	assert.Contains(t, view, "✔")
	assert.Contains(t, view, "base/")
	assert.Contains(t, view, "80%")
	assert.Contains(t, view, "50%")
	assert.Contains(t, view, domain.IndeterminateLabel)
	assert.Contains(t, view, "abc123")
}

func TestModel_EmptyListingIsNotAnError(t *testing.T) {
	m := newTestModel(t, "abc123", "")
	m.Init()

	deliver(m, nil)

	assert.Equal(t, PhaseReady, m.State().Phase)
	assert.Contains(t, m.View(), "No entries in this directory")
}

func TestModel_ErrorHidesTable(t *testing.T) {
	m := newTestModel(t, "abc123", "")
	reporter := mocks.NewMockErrorReporter(t)
	m.controller.reporter = reporter
	m.Init()
	lookupErr := domain.NewLookupError(domain.LookupNetworkError, nil, "connection refused")
	reporter.EXPECT().Report(mock.Anything, lookupErr).Return().Once()

	m.Update(CoverageFetchedMsg{Result: FetchResult{
		Err:     lookupErr,
		Request: FetchRequest{Generation: m.controller.Generation(), Revision: "abc123"},
	}})

	view := m.View()
	assert.Contains(t, view, "NetworkError: connection refused")
	assert.NotContains(t, view, "File")
	assert.Contains(t, view, "abc123")
}

func TestModel_OpenDirectoryAndBackToParent(t *testing.T) {
	m := newTestModel(t, "abc123", "")
	m.Init()
	deliver(m, []domain.CoverageRecord{
		{Name: "a.js", Covered: 1},
		{Name: "dom", IsDirectory: true, Covered: 1},
		{Name: "layout", IsDirectory: true, Covered: 1},
	})

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, "layout/", m.State().Path)
	assert.Equal(t, PhaseLoading, m.State().Phase)
	assert.Nil(t, m.State().Coverage)

	deliver(m, []domain.CoverageRecord{{Name: "x.cpp", Covered: 1}})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	require.NotNil(t, cmd)
	assert.Equal(t, "", m.State().Path)

	deliver(m, []domain.CoverageRecord{
		{Name: "a.js", Covered: 1},
		{Name: "dom", IsDirectory: true, Covered: 1},
		{Name: "layout", IsDirectory: true, Covered: 1},
	})
	assert.Equal(t, 1, m.cursor, "cursor returns to the directory we came from")
}

func TestModel_OpenOnFileDoesNothing(t *testing.T) {
	m := newTestModel(t, "abc123", "")
	m.Init()
	deliver(m, []domain.CoverageRecord{{Name: "a.js", Covered: 1}})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, "", m.State().Path)
}

// runFetches executes cmd and feeds every coverage result back into the model
func runFetches(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			runFetches(m, c)
		}
	case CoverageFetchedMsg:
		m.Update(msg)
	}
}

func TestModel_RefreshKeyGoesPastCache(t *testing.T) {
	remote := mocks.NewMockCoverageLookup(t)
	cache := mocks.NewMockSnapshotRepository(t)
	key := domain.SnapshotKey{RepoSource: domain.DefaultRepoSource, Revision: "abc123"}
	fresh := []domain.CoverageRecord{{Name: "new.js", Covered: 1, Uncovered: 1}}
	cache.EXPECT().Get(mock.Anything, key).Return(&domain.CoverageSnapshot{
		FetchedAt: time.Now(),
		Key:       key,
		Records:   []domain.CoverageRecord{{Name: "old.js", Covered: 1, Uncovered: 1}},
	}, nil).Once()
	remote.EXPECT().LookupDirectoryCoverage(mock.Anything, "abc123", "", domain.DefaultRepoSource).Return(fresh, nil).Once()
	cache.EXPECT().Save(mock.Anything, mock.MatchedBy(func(s domain.CoverageSnapshot) bool {
		return s.Key == key && len(s.Records) == 1 && s.Records[0].Name == "new.js"
	})).Return(nil).Once()

	service := services.NewCoverageService(remote, cache, time.Hour)
	m := NewModel(NewFetchController(service, nil, "", time.Second), domain.DefaultThresholds(), "abc123", "")
	runFetches(m, m.Init())
	require.Contains(t, m.View(), "old.js")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	runFetches(m, cmd)

	view := m.View()
	assert.Contains(t, view, "new.js")
	assert.NotContains(t, view, "old.js")
	assert.Equal(t, PhaseReady, m.State().Phase)
}

func TestModel_StaleFetchIgnored(t *testing.T) {
	m := newTestModel(t, "abc123", "")
	m.Init()
	stale := FetchRequest{Generation: m.controller.Generation(), Revision: "abc123"}
	deliver(m, []domain.CoverageRecord{{Name: "dom", IsDirectory: true}})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Update(CoverageFetchedMsg{Result: FetchResult{
		Records: []domain.CoverageRecord{{Name: "stale.js"}},
		Request: stale,
	}})

	assert.Equal(t, PhaseLoading, m.State().Phase)
	assert.NotContains(t, m.View(), "stale.js")
}

func TestModel_QuitKey(t *testing.T) {
	m := newTestModel(t, "abc123", "")
	m.Init()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_RevisionFormCancel(t *testing.T) {
	m := newTestModel(t, "abc123", "")
	m.Init()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, stateRevisionForm, m.state)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateBrowse, m.state)
	assert.Equal(t, "abc123", m.State().Revision)
}

func TestModel_HelpScreenOpensAndCloses(t *testing.T) {
	m := newTestModel(t, "abc123", "")
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	require.Equal(t, stateHelp, m.state)
	view := m.View()
	assert.Contains(t, view, "Navigation")
	assert.Contains(t, view, "change revision")
	assert.Contains(t, view, domain.IndeterminateLabel)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateBrowse, m.state)
	assert.Nil(t, m.helpScreen)
}

func TestModel_QuitKeyClosesHelpOnly(t *testing.T) {
	m := newTestModel(t, "abc123", "")
	m.Init()
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	assert.Nil(t, cmd)
	assert.Equal(t, stateBrowse, m.state)
}

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "layout", lastSegment("layout/"))
	assert.Equal(t, "style", lastSegment("layout/style/"))
	assert.Equal(t, "", lastSegment(""))
}

func TestFormatErrorForDisplay(t *testing.T) {
	assert.Equal(t, "", formatErrorForDisplay("", 40))
	assert.Equal(t, "HTTPError: 404", formatErrorForDisplay("HTTPError: 404", 40))

	long := "NetworkError: dial tcp 10.0.0.1:443: connect: connection refused while talking to the coverage service again and again"
	formatted := formatErrorForDisplay(long, 20)
	lines := splitLines(formatted)
	assert.Len(t, lines, maxErrorLines)
	assert.Contains(t, lines[maxErrorLines-1], truncationMark)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
