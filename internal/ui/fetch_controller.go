package ui

import (
	"context"
	"slices"
	"time"

	"github.com/renato0307/covdir/internal/domain"
	"github.com/renato0307/covdir/internal/logging"
	"github.com/renato0307/covdir/internal/ports"
)

// FetchPhase is where the view is in its fetch lifecycle
type FetchPhase int

const (
	PhaseIdle FetchPhase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

func (p FetchPhase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// ViewState is what the directory view displays.
// Only FetchController mutates it.
type ViewState struct {
	Coverage   []domain.CoverageRecord // nil until a fetch for (Revision, Path) succeeds
	Err        string
	Path       string
	Phase      FetchPhase
	RepoSource string
	Revision   string
}

// FetchRequest is one retrieval issued for a (revision, path) pair.
// Generation identifies the view the request was issued for.
type FetchRequest struct {
	Fresh      bool // bypass any cache in front of the remote lookup
	Generation uint64
	Path       string
	RepoSource string
	Revision   string
}

// FetchResult is the outcome of running a FetchRequest
type FetchResult struct {
	Err     error
	Records []domain.CoverageRecord // normalized
	Request FetchRequest
}

// FetchController owns the ViewState of one mounted directory view.
// State-changing methods must be called from a single goroutine (the Bubble
// Tea event loop); Fetch only reads immutable fields and may run anywhere.
type FetchController struct {
	defaultRepo string
	generation  uint64
	lookup      ports.CoverageLookup
	mounted     bool
	reporter    ports.ErrorReporter
	state       ViewState
	timeout     time.Duration
}

// NewFetchController creates a controller for one view.
// An empty repoSource falls back to domain.DefaultRepoSource; reporter may be nil.
func NewFetchController(lookup ports.CoverageLookup, reporter ports.ErrorReporter, repoSource string, timeout time.Duration) *FetchController {
	if repoSource == "" {
		repoSource = domain.DefaultRepoSource
	}
	return &FetchController{
		defaultRepo: repoSource,
		lookup:      lookup,
		reporter:    reporter,
		state:       ViewState{Phase: PhaseIdle, RepoSource: repoSource},
		timeout:     timeout,
	}
}

// State returns a copy of the current view state
func (c *FetchController) State() ViewState {
	state := c.state
	state.Coverage = slices.Clone(c.state.Coverage)
	return state
}

// Generation returns the tag of the current view
func (c *FetchController) Generation() uint64 {
	return c.generation
}

// Mount starts the view on (revision, path). The returned request must be
// run with Fetch and its result handed to Apply; ok is false when there is
// nothing to fetch.
func (c *FetchController) Mount(revision, path string) (FetchRequest, bool) {
	c.mounted = true
	return c.reset(revision, path)
}

// SetView moves the view to (revision, path). Nothing happens when the pair
// is already in view.
func (c *FetchController) SetView(revision, path string) (FetchRequest, bool) {
	if !c.mounted {
		return c.Mount(revision, path)
	}
	if revision == c.state.Revision && path == c.state.Path {
		return FetchRequest{}, false
	}
	return c.reset(revision, path)
}

// Refresh re-fetches the pair in view under a new generation, going past
// the cache to the remote service
func (c *FetchController) Refresh() (FetchRequest, bool) {
	c.mounted = true
	req, ok := c.reset(c.state.Revision, c.state.Path)
	req.Fresh = ok
	return req, ok
}

// reset clears the previous outcome and tags a new request
func (c *FetchController) reset(revision, path string) (FetchRequest, bool) {
	c.generation++
	c.state = ViewState{
		Path:       path,
		Phase:      PhaseLoading,
		RepoSource: c.state.RepoSource,
		Revision:   revision,
	}

	if revision == "" {
		c.state.Err = domain.DescribeError(domain.ErrRevisionRequired)
		c.state.Phase = PhaseError
		logging.Logger.Debug("No revision to fetch", "path", path)
		return FetchRequest{}, false
	}

	return FetchRequest{
		Generation: c.generation,
		Path:       path,
		RepoSource: c.state.RepoSource,
		Revision:   revision,
	}, true
}

// Fetch performs the lookup for req and normalizes its records.
// It does not touch the view state.
func (c *FetchController) Fetch(ctx context.Context, req FetchRequest) FetchResult {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if req.Fresh {
		ctx = ports.WithoutCache(ctx)
	}

	start := time.Now()
	records, err := c.lookup.LookupDirectoryCoverage(ctx, req.Revision, req.Path, req.RepoSource)
	if err != nil {
		logging.Logger.Warn("Failed to fetch directory coverage",
			"revision", req.Revision,
			"path", req.Path,
			"generation", req.Generation,
			"error", err)
		return FetchResult{Err: err, Request: req}
	}

	normalized := domain.Normalize(records)
	logging.Logger.Debug("Directory coverage fetched",
		"revision", req.Revision,
		"path", req.Path,
		"generation", req.Generation,
		"fresh", req.Fresh,
		"raw", len(records),
		"entries", len(normalized),
		"duration", time.Since(start))
	return FetchResult{Records: normalized, Request: req}
}

// Apply stores a result in the view state. Results for an older generation
// are dropped. A failed lookup is recorded, reported and returned.
func (c *FetchController) Apply(ctx context.Context, res FetchResult) error {
	if res.Request.Generation != c.generation {
		logging.Logger.Debug("Discarding stale coverage result",
			"revision", res.Request.Revision,
			"path", res.Request.Path,
			"generation", res.Request.Generation,
			"current", c.generation)
		return nil
	}

	if res.Err != nil {
		c.state.Coverage = nil
		c.state.Err = domain.DescribeError(res.Err)
		c.state.Phase = PhaseError
		if c.reporter != nil {
			c.reporter.Report(ctx, res.Err)
		}
		return res.Err
	}

	c.state.Coverage = res.Records
	if c.state.Coverage == nil {
		c.state.Coverage = []domain.CoverageRecord{}
	}
	c.state.Err = ""
	c.state.Phase = PhaseReady
	return nil
}

// FetchData runs one retrieval for (revision, path) to completion.
// An empty repoSource means the controller's default repository. A missing
// revision is recorded in the state without calling the lookup and is not
// returned; lookup failures are.
func (c *FetchController) FetchData(ctx context.Context, revision, path, repoSource string) error {
	if repoSource == "" {
		repoSource = c.defaultRepo
	}
	c.state.RepoSource = repoSource
	c.mounted = true

	req, ok := c.reset(revision, path)
	if !ok {
		return nil
	}
	return c.Apply(ctx, c.Fetch(ctx, req))
}
