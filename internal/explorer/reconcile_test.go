package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"graphex/internal/model"
)

const base = "https://graph.microsoft.com"

func TestVersionFromEndpointURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"known version", base + "/v1.0/me", "v1.0"},
		{"beta", base + "/beta/users/{id}", "beta"},
		{"unknown token accepted", base + "/me/messages", "me"},
		{"bare version", base + "/beta", "beta"},
		{"empty segment", base + "/", ""},
		{"missing base keeps version", "https://example.com/v2/me", "v1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := model.ExplorerValues{EndpointURL: tt.url, SelectedVersion: "v1.0"}
			got := VersionFromEndpointURL(in, base)
			assert.Equal(t, tt.want, got.SelectedVersion)
			assert.Equal(t, tt.url, got.EndpointURL)
		})
	}
}

func TestEndpointURLFromVersion(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		version string
		want    string
	}{
		{"swap version", base + "/v1.0/me/messages", "beta", base + "/beta/me/messages"},
		{"keeps query", base + "/v1.0/me?$select=id", "beta", base + "/beta/me?$select=id"},
		{"bare version", base + "/v1.0", "beta", base + "/beta"},
		{"empty path", base + "/", "beta", base + "/beta"},
		{"missing base", "https://example.com/v1.0/me", "beta", "https://example.com/v1.0/me"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := model.ExplorerValues{EndpointURL: tt.url, SelectedVersion: tt.version}
			got := EndpointURLFromVersion(in, base)
			assert.Equal(t, tt.want, got.EndpointURL)
			assert.Equal(t, tt.version, got.SelectedVersion)
		})
	}
}

func TestVersionRoundTrip(t *testing.T) {
	urls := []string{
		base + "/v1.0/me",
		base + "/beta/users/{id}/messages?$top=5",
		base + "/v1.0/",
		base + "/beta",
	}
	for _, url := range urls {
		t.Run(url, func(t *testing.T) {
			v := model.ExplorerValues{EndpointURL: url, SelectedVersion: "something-else"}
			got := EndpointURLFromVersion(VersionFromEndpointURL(v, base), base)
			assert.Equal(t, url, got.EndpointURL)
		})
	}
}

func TestEndpointURLFromVersionIdempotent(t *testing.T) {
	v := model.ExplorerValues{EndpointURL: base + "/v1.0/me/events", SelectedVersion: "beta"}
	once := EndpointURLFromVersion(v, base)
	twice := EndpointURLFromVersion(once, base)
	assert.Equal(t, once.EndpointURL, twice.EndpointURL)
	assert.Equal(t, base+"/beta/me/events", twice.EndpointURL)
}

func TestVersionIndex(t *testing.T) {
	versions := model.DefaultVersions

	idx, label := VersionIndex(versions, "beta")
	assert.Equal(t, 1, idx)
	assert.Equal(t, "beta", label)

	idx, label = VersionIndex(versions, "v2.0")
	assert.Equal(t, 2, idx)
	assert.Equal(t, "v2.0", label)

	idx, _ = VersionIndex([]string{"v1.0"}, "v2.0")
	assert.Equal(t, -1, idx)
}

func TestReconcile(t *testing.T) {
	prev := model.ExplorerValues{
		EndpointURL:     base + "/v1.0/me",
		SelectedOption:  model.MethodGet,
		SelectedVersion: "v1.0",
	}
	cur := prev.Clone()
	cur.EndpointURL = base + "/beta/me"
	cur.SelectedOption = model.MethodPost

	got := Reconcile(prev, cur, base)
	assert.Equal(t, "beta", got.SelectedVersion)
	assert.Equal(t, base+"/beta/me", got.EndpointURL)
	if assert.Len(t, got.Headers, 1) {
		assert.Equal(t, DefaultContentType, got.Headers[0])
	}
	assert.Empty(t, cur.Headers, "input must not be modified")
}
