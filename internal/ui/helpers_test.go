package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphex/internal/catalog"
	"graphex/internal/model"
)

func TestFuzzyMatchScore(t *testing.T) {
	s, ok := fuzzyMatchScore("", "anything")
	assert.True(t, ok)
	assert.Zero(t, s)

	_, ok = fuzzyMatchScore("xyz", "users")
	assert.False(t, ok)

	contiguous, ok := fuzzyMatchScore("msg", "GET /me/msg")
	require.True(t, ok)
	scattered, ok := fuzzyMatchScore("msg", "GET /me/messages")
	require.True(t, ok)
	assert.Less(t, contiguous, scattered)

	_, ok = fuzzyMatchScore("ME", "get /me")
	assert.True(t, ok)
}

func TestFilterEntries(t *testing.T) {
	entries := []catalog.Entry{
		{URL: base + "/v1.0/users", Methods: []string{"GET", "POST"}},
		{URL: base + "/v1.0/me/messages", Methods: []string{"GET"}, Summaries: []string{"List messages"}},
		{URL: base + "/v1.0/me", Methods: []string{"PATCH"}},
	}

	assert.Equal(t, []int{0, 1, 2}, filterEntries(entries, " "))
	assert.Equal(t, []int{0}, filterEntries(entries, "users"))
	assert.Equal(t, []int{2}, filterEntries(entries, "patch"))
	assert.Empty(t, filterEntries(entries, "zzz"))
}

func TestPickCatalog(t *testing.T) {
	a := newTestApp(t, "")
	require.NoError(t, a.openCatalog(nil, nil))

	for _, r := range "user" {
		require.NoError(t, a.appendFilterRune(r)(nil, nil))
	}
	assert.Equal(t, []int{2}, a.filtered)
	require.NoError(t, a.filterBackspace(nil, nil))
	assert.Equal(t, "use", a.filter)

	a.pickCatalog(0)
	assert.Equal(t, screenExplorer, a.scr)
	assert.Equal(t, base+"/v1.0/users/{id}", a.ctrl.State().EndpointURL)

	// no-op outside the catalog screen
	a.pickCatalog(0)
	assert.Equal(t, base+"/v1.0/users/{id}", a.ctrl.State().EndpointURL)
}

func TestParseHeaderLine(t *testing.T) {
	h, err := parseHeaderLine("  Accept :  application/json ")
	require.NoError(t, err)
	assert.Equal(t, model.Header{Name: "Accept", Value: "application/json", Enabled: true}, h)

	h, err = parseHeaderLine("X-Flag")
	require.NoError(t, err)
	assert.Equal(t, "", h.Value)

	h, err = parseHeaderLine("Authorization: Bearer a:b")
	require.NoError(t, err)
	assert.Equal(t, "Bearer a:b", h.Value)

	_, err = parseHeaderLine("  : v")
	assert.Error(t, err)

	assert.Equal(t, "Accept: application/json", formatHeaderLine(model.Header{Name: "Accept", Value: "application/json"}))
}

func TestCompactJSON(t *testing.T) {
	assert.Equal(t, `{"a":1,"b":[1,2]}`, compactJSON("{\n  \"a\": 1,\n  \"b\": [1, 2]\n}"))
	assert.Equal(t, "{oops", compactJSON(" {oops "))
}

func TestCycleIndexAndClamp(t *testing.T) {
	assert.Equal(t, 0, cycleIndex(4, 1, 5))
	assert.Equal(t, 4, cycleIndex(0, -1, 5))
	assert.Equal(t, 0, cycleIndex(3, 1, 0))

	assert.Equal(t, 2, clamp(7, 3))
	assert.Equal(t, 0, clamp(-1, 3))
	assert.Equal(t, 0, clamp(1, 0))
}

func TestColorHelpers(t *testing.T) {
	assert.Equal(t, colorGreen+"200 OK"+colorReset, colorizeStatus("200 OK"))
	assert.Equal(t, colorYellow+"404 Not Found"+colorReset, colorizeStatus("404 Not Found"))
	assert.Equal(t, colorRed+"503 Service Unavailable"+colorReset, colorizeStatus("503 Service Unavailable"))
	assert.Equal(t, "weird", colorizeStatus("weird"))

	assert.Equal(t, colorBlue+"GET   "+colorReset, colorizeMethod("GET"))
	assert.Equal(t, "/users/"+colorCyan+"{id}"+colorReset, highlightPathParams("/users/{id}"))
}
