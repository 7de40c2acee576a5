package explorer

import (
	"strings"

	"graphex/internal/graph"
)

// Matches returns the catalog entries that contain query, in catalog order.
// It suggests nothing when query does not parse under baseURL or when its
// last segment already carries a query string.
func Matches(query string, catalog []string, baseURL string) []string {
	out := []string{}

	links := graph.ConstructGraphLinksFromFullPath(query, baseURL)
	if len(links) == 0 {
		return out
	}
	if strings.Contains(links[len(links)-1].Name, "?") {
		return out
	}

	for _, option := range catalog {
		if strings.Contains(option, query) {
			out = append(out, option)
		}
	}
	return out
}
