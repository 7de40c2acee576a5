package explorer

import (
	"context"
	"log/slog"

	"graphex/internal/model"
)

type SelectionKind int

const (
	SelectMethod SelectionKind = iota
	SelectVersion
)

func (k SelectionKind) String() string {
	switch k {
	case SelectMethod:
		return "method"
	case SelectVersion:
		return "version"
	default:
		return "unknown"
	}
}

// SelectionChanged is raised by a selector widget when the user picks an
// item. Label is the text the widget shows for that item.
type SelectionChanged struct {
	Kind  SelectionKind
	ID    string
	Label string
}

// View is the widget side of the explorer screen.
type View interface {
	SelectMethod(index int)
	SelectVersion(index int, label string)
	SetEndpointURL(url string)
	SetMethodEnabled(enabled bool)
}

// CatalogProvider returns the known endpoint URLs of an API version.
type CatalogProvider interface {
	URLs(version string) []string
}

// QueryRunner executes the request described by v.
type QueryRunner interface {
	ExecuteExplorerQuery(ctx context.Context, v model.ExplorerValues)
}

type Options struct {
	BaseURL  string
	Versions []string
	// Authenticated unlocks the method selector.
	Authenticated bool
}

// Controller owns the explorer state and keeps the view in step with it.
// It is not safe for concurrent use; drive it from the UI loop.
type Controller struct {
	opts    Options
	catalog CatalogProvider
	runner  QueryRunner
	view    View
	logger  *slog.Logger

	state  model.ExplorerValues
	last   model.ExplorerValues
	synced bool
}

func NewController(opts Options, catalog CatalogProvider, runner QueryRunner, view View, logger *slog.Logger) *Controller {
	if len(opts.Versions) == 0 {
		opts.Versions = model.DefaultVersions
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{opts: opts, catalog: catalog, runner: runner, view: view, logger: logger}
}

func (c *Controller) Options() Options { return c.opts }

func (c *Controller) State() model.ExplorerValues {
	return c.state.Clone()
}

// Apply makes next the current state. When it differs from the last
// reconciled state a change-detection pass runs and the view is refreshed.
func (c *Controller) Apply(next model.ExplorerValues) model.ExplorerValues {
	if c.synced && next.Equal(c.last) {
		c.state = c.last.Clone()
		return c.State()
	}

	reconciled := Reconcile(c.last, next, c.opts.BaseURL)
	if reconciled.SelectedVersion != c.last.SelectedVersion {
		c.logger.Debug("version changed",
			slog.String("from", c.last.SelectedVersion),
			slog.String("to", reconciled.SelectedVersion))
	}
	c.state = reconciled
	c.last = reconciled.Clone()
	c.synced = true
	c.render()
	return c.State()
}

func (c *Controller) render() {
	if c.view == nil {
		return
	}
	if idx := model.MethodIndex(c.state.SelectedOption); idx != -1 {
		c.view.SelectMethod(idx)
	}
	if idx, label := VersionIndex(c.opts.Versions, c.state.SelectedVersion); idx != -1 {
		c.view.SelectVersion(idx, label)
	} else {
		c.logger.Debug("no selector slot for version", slog.String("version", c.state.SelectedVersion))
	}
	c.view.SetEndpointURL(c.state.EndpointURL)
	c.view.SetMethodEnabled(c.opts.Authenticated)
}

// HandleSelection applies a selector event.
func (c *Controller) HandleSelection(ev SelectionChanged) model.ExplorerValues {
	next := c.State()
	switch ev.Kind {
	case SelectMethod:
		if !c.opts.Authenticated {
			c.logger.Debug("method change ignored while signed out", slog.String("method", ev.ID))
			return next
		}
		m, ok := model.ParseMethod(ev.ID)
		if !ok {
			return next
		}
		next.SelectedOption = m
	case SelectVersion:
		version := ev.Label
		if version == "" {
			version = ev.ID
		}
		next.SelectedVersion = version
		next = EndpointURLFromVersion(next, c.opts.BaseURL)
	default:
		return next
	}
	return c.Apply(next)
}

func (c *Controller) SetEndpointURL(url string) model.ExplorerValues {
	next := c.State()
	next.EndpointURL = url
	return c.Apply(next)
}

func (c *Controller) SetHeaders(headers []model.Header) model.ExplorerValues {
	next := c.State()
	next.Headers = append([]model.Header(nil), headers...)
	return c.Apply(next)
}

func (c *Controller) SetRequestBody(body string) model.ExplorerValues {
	next := c.State()
	next.RequestBody = body
	return c.Apply(next)
}

// Suggestions returns catalog URLs of the selected version matching the
// endpoint URL being edited.
func (c *Controller) Suggestions() []string {
	if c.catalog == nil {
		return []string{}
	}
	return Matches(c.state.EndpointURL, c.catalog.URLs(c.state.SelectedVersion), c.opts.BaseURL)
}

// Submit hands the current state to the query runner unless a request is
// already running. It reports whether the runner was called.
func (c *Controller) Submit(ctx context.Context) bool {
	if c.state.RequestInProgress || c.runner == nil {
		return false
	}
	next := c.State()
	next.RequestInProgress = true
	snapshot := c.Apply(next)

	c.logger.Info("executing query",
		slog.String("method", string(snapshot.SelectedOption)),
		slog.String("url", snapshot.EndpointURL))
	c.runner.ExecuteExplorerQuery(ctx, snapshot)
	return true
}

// CompleteRequest clears the in-progress flag set by Submit.
func (c *Controller) CompleteRequest() {
	next := c.State()
	next.RequestInProgress = false
	c.Apply(next)
}

func (c *Controller) ShareEnabled() bool {
	return c.state.SelectedOption == model.MethodGet
}

// ShareURL is the URL to hand out for the current request. Only GET
// requests can be shared.
func (c *Controller) ShareURL() string {
	if !c.ShareEnabled() {
		return ""
	}
	return c.state.EndpointURL
}
