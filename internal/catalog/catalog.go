package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"golang.org/x/sync/errgroup"

	"graphex/internal/openapi"
)

var ErrNoSources = errors.New("no catalog sources")

// Entry is one known endpoint URL and the operations available on it.
type Entry struct {
	URL       string
	Methods   []string
	Summaries []string
}

// Catalog holds the known endpoint URLs of each API version. It is filled
// once at startup and read-only afterwards.
type Catalog struct {
	byVersion map[string][]Entry
}

func New() *Catalog {
	return &Catalog{byVersion: map[string][]Entry{}}
}

// Add appends entries to version.
func (c *Catalog) Add(version string, entries ...Entry) {
	c.byVersion[version] = append(c.byVersion[version], entries...)
}

// URLs returns the endpoint URLs of version in catalog order.
func (c *Catalog) URLs(version string) []string {
	entries := c.byVersion[version]
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.URL
	}
	return out
}

func (c *Catalog) Entries(version string) []Entry {
	return append([]Entry(nil), c.byVersion[version]...)
}

func (c *Catalog) Versions() []string {
	out := make([]string, 0, len(c.byVersion))
	for v := range c.byVersion {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Len() int {
	n := 0
	for _, entries := range c.byVersion {
		n += len(entries)
	}
	return n
}

// FromDocument turns the operations of doc into catalog entries, one per
// path, addressed as <baseURL>/<version><path>.
func FromDocument(doc *openapi3.T, baseURL, version string) []Entry {
	prefix := strings.TrimRight(baseURL, "/") + "/" + version

	var out []Entry
	index := map[string]int{}
	for _, ep := range openapi.ExtractEndpoints(doc) {
		i, ok := index[ep.Path]
		if !ok {
			i = len(out)
			index[ep.Path] = i
			out = append(out, Entry{URL: prefix + ep.Path})
		}
		out[i].Methods = append(out[i].Methods, ep.Method)
		if ep.Summary != "" {
			out[i].Summaries = append(out[i].Summaries, ep.Summary)
		}
	}
	return out
}

// LoadVersions loads one OpenAPI document per version concurrently and
// builds a catalog from them. Any failing source fails the whole load.
func LoadVersions(ctx context.Context, baseURL string, sources map[string]string) (*Catalog, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	versions := make([]string, 0, len(sources))
	for v := range sources {
		versions = append(versions, v)
	}
	sort.Strings(versions)

	results := make([][]Entry, len(versions))
	g, gctx := errgroup.WithContext(ctx)
	for i, version := range versions {
		g.Go(func() error {
			doc, err := openapi.Load(gctx, sources[version])
			if err != nil {
				return fmt.Errorf("catalog %s: %w", version, err)
			}
			results[i] = FromDocument(doc, baseURL, version)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := New()
	for i, version := range versions {
		c.Add(version, results[i]...)
	}
	return c, nil
}

// Summary returns the text shown next to an entry in lists.
func (e Entry) Summary() string {
	return strings.Join(e.Summaries, "; ")
}
