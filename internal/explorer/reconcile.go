package explorer

import (
	"strings"

	"graphex/internal/model"
)

// splitVersionPath returns the segments after baseURL + "/", the first of
// which is the version token.
func splitVersionPath(endpointURL, baseURL string) ([]string, bool) {
	rest, ok := strings.CutPrefix(endpointURL, baseURL+"/")
	if !ok {
		return nil, false
	}
	return strings.Split(rest, "/"), true
}

// VersionFromEndpointURL copies the first segment after the base URL into
// SelectedVersion. The token is not checked against the known versions; an
// unknown one is shown in the Other slot of the selector.
func VersionFromEndpointURL(v model.ExplorerValues, baseURL string) model.ExplorerValues {
	parts, ok := splitVersionPath(v.EndpointURL, baseURL)
	if !ok {
		return v
	}
	v.SelectedVersion = parts[0]
	return v
}

// EndpointURLFromVersion swaps the version segment of the endpoint URL for
// SelectedVersion, leaving the rest of the path untouched.
func EndpointURLFromVersion(v model.ExplorerValues, baseURL string) model.ExplorerValues {
	parts, ok := splitVersionPath(v.EndpointURL, baseURL)
	if !ok {
		return v
	}
	parts[0] = v.SelectedVersion
	v.EndpointURL = baseURL + "/" + strings.Join(parts, "/")
	return v
}

// VersionIndex locates version in the selector list. Versions that are not
// listed map to the Other slot, labelled with the raw token. It returns -1
// when there is no Other slot to fall back on.
func VersionIndex(versions []string, version string) (int, string) {
	for i, candidate := range versions {
		if candidate == version {
			return i, version
		}
	}
	for i, candidate := range versions {
		if candidate == model.VersionOther {
			return i, version
		}
	}
	return -1, version
}

// Reconcile runs one change-detection pass from prev to cur.
func Reconcile(prev, cur model.ExplorerValues, baseURL string) model.ExplorerValues {
	next := cur.Clone()
	next = VersionFromEndpointURL(next, baseURL)
	next = EndpointURLFromVersion(next, baseURL)
	return WithContentTypeHeader(prev, next)
}
