package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/covdir/internal/domain"
	"github.com/renato0307/covdir/internal/ports"
	"github.com/renato0307/covdir/internal/ports/mocks"
)

func newTestController(t *testing.T) (*FetchController, *mocks.MockCoverageLookup, *mocks.MockErrorReporter) {
	t.Helper()
	lookup := mocks.NewMockCoverageLookup(t)
	reporter := mocks.NewMockErrorReporter(t)
	return NewFetchController(lookup, reporter, "", time.Second), lookup, reporter
}

func TestFetchData_NormalizesRecords(t *testing.T) {
	controller, lookup, _ := newTestController(t)
	raw := []domain.CoverageRecord{
		{Name: "b.js", Covered: 8, Uncovered: 2},
		{Name: "a", IsDirectory: true, Covered: 5, Uncovered: 5},
		{Name: "NONE", Covered: 1, Uncovered: 1},
		{Name: "chrome://x", Covered: 1},
	}
	lookup.EXPECT().LookupDirectoryCoverage(mock.Anything, "rev1", "dom/", domain.DefaultRepoSource).Return(raw, nil).Once()

	err := controller.FetchData(context.Background(), "rev1", "dom/", "")

	require.NoError(t, err)
	state := controller.State()
	assert.Equal(t, PhaseReady, state.Phase)
	assert.Empty(t, state.Err)
	assert.Equal(t, []domain.CoverageRecord{
		{Name: "a", IsDirectory: true, Covered: 5, Uncovered: 5},
		{Name: "b.js", Covered: 8, Uncovered: 2},
	}, state.Coverage)
	assert.Equal(t, "rev1", state.Revision)
	assert.Equal(t, "dom/", state.Path)
	assert.Equal(t, domain.DefaultRepoSource, state.RepoSource)
}

func TestFetchData_MissingRevisionSkipsLookup(t *testing.T) {
	controller, lookup, reporter := newTestController(t)

	err := controller.FetchData(context.Background(), "", "dom/", "")

	require.NoError(t, err)
	state := controller.State()
	assert.Equal(t, PhaseError, state.Phase)
	assert.Equal(t, "revision is required", state.Err)
	assert.Nil(t, state.Coverage)
	lookup.AssertNotCalled(t, "LookupDirectoryCoverage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	reporter.AssertNotCalled(t, "Report", mock.Anything, mock.Anything)
}

func TestFetchData_FailureRecordsReportsAndReturns(t *testing.T) {
	controller, lookup, reporter := newTestController(t)
	lookupErr := domain.NewLookupError(domain.LookupHTTPError, nil, "500 Internal Server Error: boom")
	lookup.EXPECT().LookupDirectoryCoverage(mock.Anything, "rev1", "", "try").Return(nil, lookupErr).Once()
	reporter.EXPECT().Report(mock.Anything, lookupErr).Return().Once()

	err := controller.FetchData(context.Background(), "rev1", "", "try")

	assert.ErrorIs(t, err, lookupErr)
	state := controller.State()
	assert.Equal(t, PhaseError, state.Phase)
	assert.Equal(t, "HTTPError: 500 Internal Server Error: boom", state.Err)
	assert.Nil(t, state.Coverage)
	assert.Equal(t, "try", state.RepoSource)
}

func TestFetchData_PlainErrorDescribed(t *testing.T) {
	controller, lookup, reporter := newTestController(t)
	boom := errors.New("boom")
	lookup.EXPECT().LookupDirectoryCoverage(mock.Anything, "rev1", "", mock.Anything).Return(nil, boom).Once()
	reporter.EXPECT().Report(mock.Anything, boom).Return().Once()

	err := controller.FetchData(context.Background(), "rev1", "", "")

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "Error: boom", controller.State().Err)
}

func TestFetchData_SuccessAfterFailureClearsError(t *testing.T) {
	controller, lookup, reporter := newTestController(t)
	boom := errors.New("boom")
	lookup.EXPECT().LookupDirectoryCoverage(mock.Anything, "rev1", "", mock.Anything).Return(nil, boom).Once()
	reporter.EXPECT().Report(mock.Anything, boom).Return().Once()
	lookup.EXPECT().LookupDirectoryCoverage(mock.Anything, "rev2", "", mock.Anything).Return([]domain.CoverageRecord{}, nil).Once()

	_ = controller.FetchData(context.Background(), "rev1", "", "")
	err := controller.FetchData(context.Background(), "rev2", "", "")

	require.NoError(t, err)
	state := controller.State()
	assert.Equal(t, PhaseReady, state.Phase)
	assert.Empty(t, state.Err)
	assert.NotNil(t, state.Coverage)
	assert.Empty(t, state.Coverage)
}

func TestFetchData_NilReporterStillReturnsError(t *testing.T) {
	lookup := mocks.NewMockCoverageLookup(t)
	controller := NewFetchController(lookup, nil, "", 0)
	boom := errors.New("boom")
	lookup.EXPECT().LookupDirectoryCoverage(mock.Anything, "rev1", "", mock.Anything).Return(nil, boom).Once()

	err := controller.FetchData(context.Background(), "rev1", "", "")

	assert.ErrorIs(t, err, boom)
}

func TestMount_IssuesTaggedRequest(t *testing.T) {
	controller, _, _ := newTestController(t)

	req, ok := controller.Mount("rev1", "dom/")

	require.True(t, ok)
	assert.Equal(t, FetchRequest{Generation: 1, Path: "dom/", RepoSource: domain.DefaultRepoSource, Revision: "rev1"}, req)
	assert.Equal(t, PhaseLoading, controller.State().Phase)
}

func TestSetView_SamePairIsNoop(t *testing.T) {
	controller, _, _ := newTestController(t)
	controller.Mount("rev1", "dom/")

	_, ok := controller.SetView("rev1", "dom/")

	assert.False(t, ok)
	assert.Equal(t, uint64(1), controller.Generation())
}

func TestSetView_BeforeMountMounts(t *testing.T) {
	controller, _, _ := newTestController(t)

	req, ok := controller.SetView("rev1", "")

	require.True(t, ok)
	assert.Equal(t, uint64(1), req.Generation)
}

func TestSetView_ChangeClearsPreviousCoverage(t *testing.T) {
	controller, lookup, _ := newTestController(t)
	lookup.EXPECT().LookupDirectoryCoverage(mock.Anything, "rev1", "", mock.Anything).
		Return([]domain.CoverageRecord{{Name: "a.js", Covered: 1}}, nil).Once()
	req, _ := controller.Mount("rev1", "")
	require.NoError(t, controller.Apply(context.Background(), controller.Fetch(context.Background(), req)))
	require.NotEmpty(t, controller.State().Coverage)

	_, ok := controller.SetView("rev1", "dom/")

	require.True(t, ok)
	state := controller.State()
	assert.Nil(t, state.Coverage)
	assert.Empty(t, state.Err)
	assert.Equal(t, PhaseLoading, state.Phase)
	assert.Equal(t, "dom/", state.Path)
}

func TestSetView_EmptyRevisionEntersError(t *testing.T) {
	controller, _, _ := newTestController(t)
	controller.Mount("rev1", "")

	_, ok := controller.SetView("", "")

	assert.False(t, ok)
	assert.Equal(t, PhaseError, controller.State().Phase)
	assert.Equal(t, "revision is required", controller.State().Err)
}

func TestApply_StaleResultDiscarded(t *testing.T) {
	controller, _, reporter := newTestController(t)
	first, _ := controller.Mount("rev1", "")
	second, _ := controller.SetView("rev2", "")

	newer := []domain.CoverageRecord{{Name: "new.js", Covered: 1}}
	require.NoError(t, controller.Apply(context.Background(), FetchResult{Records: newer, Request: second}))
	err := controller.Apply(context.Background(), FetchResult{
		Records: []domain.CoverageRecord{{Name: "old.js"}},
		Request: first,
	})

	require.NoError(t, err)
	state := controller.State()
	assert.Equal(t, "rev2", state.Revision)
	assert.Equal(t, newer, state.Coverage)
	reporter.AssertNotCalled(t, "Report", mock.Anything, mock.Anything)
}

func TestApply_StaleResultArrivingFirstDiscarded(t *testing.T) {
	controller, _, reporter := newTestController(t)
	first, _ := controller.Mount("rev1", "")
	second, _ := controller.SetView("rev2", "")

	err := controller.Apply(context.Background(), FetchResult{Err: errors.New("late failure"), Request: first})
	require.NoError(t, err)
	assert.Equal(t, PhaseLoading, controller.State().Phase)
	assert.Empty(t, controller.State().Err)

	require.NoError(t, controller.Apply(context.Background(), FetchResult{Records: []domain.CoverageRecord{}, Request: second}))
	assert.Equal(t, PhaseReady, controller.State().Phase)
	reporter.AssertNotCalled(t, "Report", mock.Anything, mock.Anything)
}

func TestRefresh_InvalidatesOutstandingRequest(t *testing.T) {
	controller, _, _ := newTestController(t)
	first, _ := controller.Mount("rev1", "dom/")

	second, ok := controller.Refresh()

	require.True(t, ok)
	assert.Equal(t, first.Revision, second.Revision)
	assert.Equal(t, first.Path, second.Path)
	assert.Greater(t, second.Generation, first.Generation)
	require.NoError(t, controller.Apply(context.Background(), FetchResult{Records: []domain.CoverageRecord{{Name: "x"}}, Request: first}))
	assert.Nil(t, controller.State().Coverage)
}

func TestRefresh_MarksRequestFresh(t *testing.T) {
	controller, lookup, _ := newTestController(t)
	mounted, _ := controller.Mount("rev1", "dom/")
	require.False(t, mounted.Fresh)
	lookup.EXPECT().LookupDirectoryCoverage(mock.Anything, "rev1", "dom/", domain.DefaultRepoSource).
		RunAndReturn(func(ctx context.Context, _, _, _ string) ([]domain.CoverageRecord, error) {
			assert.True(t, ports.CacheSkipped(ctx))
			return []domain.CoverageRecord{{Name: "x.js"}}, nil
		}).Once()

	req, ok := controller.Refresh()
	require.True(t, ok)
	require.True(t, req.Fresh)

	require.NoError(t, controller.Apply(context.Background(), controller.Fetch(context.Background(), req)))
	assert.Equal(t, []domain.CoverageRecord{{Name: "x.js"}}, controller.State().Coverage)
}

func TestRefresh_WithoutRevisionIsNotFresh(t *testing.T) {
	controller, _, _ := newTestController(t)
	controller.Mount("", "")

	req, ok := controller.Refresh()

	assert.False(t, ok)
	assert.False(t, req.Fresh)
	assert.Equal(t, PhaseError, controller.State().Phase)
}

func TestFetch_AppliesTimeout(t *testing.T) {
	lookup := mocks.NewMockCoverageLookup(t)
	controller := NewFetchController(lookup, nil, "central", 50*time.Millisecond)
	lookup.EXPECT().LookupDirectoryCoverage(mock.Anything, "rev1", "", "central").
		RunAndReturn(func(ctx context.Context, _, _, _ string) ([]domain.CoverageRecord, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return nil, nil
		}).Once()
	req, _ := controller.Mount("rev1", "")

	res := controller.Fetch(context.Background(), req)

	require.NoError(t, res.Err)
	assert.NotNil(t, res.Records)
	assert.Equal(t, PhaseLoading, controller.State().Phase)
}

func TestState_ReturnsCopy(t *testing.T) {
	controller, _, _ := newTestController(t)
	req, _ := controller.Mount("rev1", "")
	require.NoError(t, controller.Apply(context.Background(), FetchResult{Records: []domain.CoverageRecord{{Name: "a"}}, Request: req}))

	state := controller.State()
	state.Coverage[0].Name = "mutated"

	assert.Equal(t, "a", controller.State().Coverage[0].Name)
}

func TestFetchPhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "ready", PhaseReady.String())
	assert.Equal(t, "error", PhaseError.String())
}
