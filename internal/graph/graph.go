package graph

import (
	"strings"

	"graphex/internal/model"
)

// shortURLThreshold is the endpoint URL length past which suggestions are
// shown by their last segment only.
const shortURLThreshold = 50

// ConstructGraphLinksFromFullPath splits the part of fullPath after
// baseURL + "/" into path segments. It returns an empty slice when fullPath
// does not start with that prefix or nothing follows it.
func ConstructGraphLinksFromFullPath(fullPath, baseURL string) []model.GraphNodeLink {
	rest, ok := strings.CutPrefix(fullPath, baseURL+"/")
	if !ok || rest == "" {
		return []model.GraphNodeLink{}
	}

	parts := strings.Split(rest, "/")
	links := make([]model.GraphNodeLink, 0, len(parts))
	for _, p := range parts {
		links = append(links, model.GraphNodeLink{Name: p})
	}
	return links
}

// RelativeURL joins the segment names back into a path without the base URL.
func RelativeURL(links []model.GraphNodeLink) string {
	names := make([]string, len(links))
	for i, l := range links {
		names[i] = l.Name
	}
	return strings.Join(names, "/")
}

// ShortURL returns the label used for a suggestion while the endpoint URL
// being edited is endpointURLLen characters long.
func ShortURL(url, baseURL string, endpointURLLen int) string {
	if endpointURLLen <= shortURLThreshold {
		return url
	}
	links := ConstructGraphLinksFromFullPath(url, baseURL)
	if len(links) == 0 {
		return url
	}
	return "/" + links[len(links)-1].Name
}
