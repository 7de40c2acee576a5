package explorer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphex/internal/logging"
	"graphex/internal/model"
)

type fakeView struct {
	methodIdx     int
	versionIdx    int
	versionLabel  string
	endpointURL   string
	methodEnabled bool
	renders       int
}

func (v *fakeView) SelectMethod(index int) { v.methodIdx = index }

func (v *fakeView) SelectVersion(index int, label string) {
	v.versionIdx = index
	v.versionLabel = label
	v.renders++
}

func (v *fakeView) SetEndpointURL(url string)      { v.endpointURL = url }
func (v *fakeView) SetMethodEnabled(enabled bool) { v.methodEnabled = enabled }

type fakeRunner struct {
	calls []model.ExplorerValues
}

func (r *fakeRunner) ExecuteExplorerQuery(_ context.Context, v model.ExplorerValues) {
	r.calls = append(r.calls, v)
}

type mapCatalog map[string][]string

func (c mapCatalog) URLs(version string) []string { return c[version] }

func newTestController(authenticated bool) (*Controller, *fakeView, *fakeRunner) {
	view := &fakeView{}
	runner := &fakeRunner{}
	catalog := mapCatalog{
		"v1.0": {base + "/v1.0/me", base + "/v1.0/me/messages", base + "/v1.0/users"},
		"beta": {base + "/beta/me", base + "/beta/me/insights"},
	}
	c := NewController(Options{BaseURL: base, Versions: model.DefaultVersions, Authenticated: authenticated},
		catalog, runner, view, logging.NewNopLogger())
	c.Apply(model.ExplorerValues{
		EndpointURL:     base + "/v1.0/me",
		SelectedOption:  model.MethodGet,
		SelectedVersion: "v1.0",
	})
	return c, view, runner
}

func TestControllerInitialRender(t *testing.T) {
	_, view, _ := newTestController(true)

	assert.Equal(t, 0, view.methodIdx)
	assert.Equal(t, 0, view.versionIdx)
	assert.Equal(t, "v1.0", view.versionLabel)
	assert.Equal(t, base+"/v1.0/me", view.endpointURL)
	assert.True(t, view.methodEnabled)
}

func TestControllerFirstPassInjectsForPost(t *testing.T) {
	c := NewController(Options{BaseURL: base}, nil, nil, nil, nil)
	got := c.Apply(model.ExplorerValues{EndpointURL: base + "/v1.0/me", SelectedOption: model.MethodPost})

	require.Len(t, got.Headers, 1)
	assert.Equal(t, "Content-type", got.Headers[0].Name)
	assert.Equal(t, "v1.0", got.SelectedVersion)
}

func TestControllerTypedVersion(t *testing.T) {
	c, view, _ := newTestController(true)

	got := c.SetEndpointURL(base + "/beta/me")
	assert.Equal(t, "beta", got.SelectedVersion)
	assert.Equal(t, 1, view.versionIdx)

	got = c.SetEndpointURL(base + "/v2.0/me")
	assert.Equal(t, "v2.0", got.SelectedVersion)
	assert.Equal(t, 2, view.versionIdx)
	assert.Equal(t, "v2.0", view.versionLabel)
}

func TestControllerVersionSelection(t *testing.T) {
	c, view, _ := newTestController(true)

	got := c.HandleSelection(SelectionChanged{Kind: SelectVersion, ID: "1", Label: "beta"})
	assert.Equal(t, "beta", got.SelectedVersion)
	assert.Equal(t, base+"/beta/me", got.EndpointURL)
	assert.Equal(t, base+"/beta/me", view.endpointURL)

	got = c.HandleSelection(SelectionChanged{Kind: SelectVersion, ID: "v1.0"})
	assert.Equal(t, base+"/v1.0/me", got.EndpointURL)
}

func TestControllerMethodSelection(t *testing.T) {
	c, view, _ := newTestController(true)

	got := c.HandleSelection(SelectionChanged{Kind: SelectMethod, ID: "POST"})
	assert.Equal(t, model.MethodPost, got.SelectedOption)
	assert.Equal(t, 1, view.methodIdx)
	require.Len(t, got.Headers, 1)
	assert.Equal(t, DefaultContentType, got.Headers[0])

	// a second pass without a method edge must not add another header
	got = c.SetRequestBody(`{"displayName":"x"}`)
	assert.Len(t, got.Headers, 1)

	got = c.HandleSelection(SelectionChanged{Kind: SelectMethod, ID: "patch"})
	assert.Equal(t, model.MethodPatch, got.SelectedOption)
	assert.Len(t, got.Headers, 1)

	got = c.HandleSelection(SelectionChanged{Kind: SelectMethod, ID: "TRACE"})
	assert.Equal(t, model.MethodPatch, got.SelectedOption)
}

func TestControllerMethodLockedWhenSignedOut(t *testing.T) {
	c, view, _ := newTestController(false)

	got := c.HandleSelection(SelectionChanged{Kind: SelectMethod, ID: "POST"})
	assert.Equal(t, model.MethodGet, got.SelectedOption)
	assert.False(t, view.methodEnabled)
}

func TestControllerUnchangedStateSkipsRender(t *testing.T) {
	c, view, _ := newTestController(true)
	before := view.renders

	c.Apply(c.State())
	assert.Equal(t, before, view.renders)

	c.SetEndpointURL(base + "/v1.0/users")
	assert.Equal(t, before+1, view.renders)
}

func TestControllerStateIsACopy(t *testing.T) {
	c, _, _ := newTestController(true)
	c.SetHeaders([]model.Header{{Name: "Accept", Value: "application/json", Enabled: true}})

	s := c.State()
	s.Headers[0].Value = "text/plain"
	assert.Equal(t, "application/json", c.State().Headers[0].Value)
}

func TestControllerSuggestions(t *testing.T) {
	c, _, _ := newTestController(true)

	assert.Equal(t, []string{base + "/v1.0/me", base + "/v1.0/me/messages"}, c.Suggestions())

	c.SetEndpointURL(base + "/beta/me/")
	assert.Equal(t, []string{base + "/beta/me/insights"}, c.Suggestions())

	c.SetEndpointURL(base + "/beta/me?$select=id")
	assert.Empty(t, c.Suggestions())

	empty := NewController(Options{BaseURL: base}, nil, nil, nil, nil)
	assert.Empty(t, empty.Suggestions())
}

func TestControllerSubmit(t *testing.T) {
	c, _, runner := newTestController(true)

	require.True(t, c.Submit(context.Background()))
	require.Len(t, runner.calls, 1)
	assert.True(t, runner.calls[0].RequestInProgress)
	assert.Equal(t, base+"/v1.0/me", runner.calls[0].EndpointURL)

	assert.False(t, c.Submit(context.Background()), "second submit while running")
	assert.Len(t, runner.calls, 1)

	c.CompleteRequest()
	assert.False(t, c.State().RequestInProgress)
	assert.True(t, c.Submit(context.Background()))
	assert.Len(t, runner.calls, 2)
}

func TestControllerShare(t *testing.T) {
	c, _, _ := newTestController(true)
	assert.True(t, c.ShareEnabled())
	assert.Equal(t, base+"/v1.0/me", c.ShareURL())

	c.HandleSelection(SelectionChanged{Kind: SelectMethod, ID: "DELETE"})
	assert.False(t, c.ShareEnabled())
	assert.Empty(t, c.ShareURL())
}
