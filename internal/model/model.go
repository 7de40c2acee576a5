package model

import "strings"

type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// Methods is the order the method selector shows.
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete}

// MethodIndex returns the selector position of m, or -1.
func MethodIndex(m Method) int {
	for i, candidate := range Methods {
		if candidate == m {
			return i
		}
	}
	return -1
}

// ParseMethod upper-cases s and reports whether it is a known method.
func ParseMethod(s string) (Method, bool) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	return m, MethodIndex(m) != -1
}

const (
	// VersionOther is the selector slot for a version token that is not in
	// the known list.
	VersionOther = "Other"

	DefaultGraphURL = "https://graph.microsoft.com"
)

var DefaultVersions = []string{"v1.0", "beta", VersionOther}

type Header struct {
	Name     string
	Value    string
	Enabled  bool
	Readonly bool
}

// ExplorerValues describes the request being built.
type ExplorerValues struct {
	EndpointURL       string
	SelectedOption    Method
	SelectedVersion   string
	Headers           []Header
	RequestBody       string
	RequestInProgress bool
}

// Clone returns a copy that shares no header storage with v.
func (v ExplorerValues) Clone() ExplorerValues {
	out := v
	if v.Headers != nil {
		out.Headers = make([]Header, len(v.Headers))
		copy(out.Headers, v.Headers)
	}
	return out
}

// Equal reports whether every field of v and o matches. A nil header list
// equals an empty one.
func (v ExplorerValues) Equal(o ExplorerValues) bool {
	if v.EndpointURL != o.EndpointURL ||
		v.SelectedOption != o.SelectedOption ||
		v.SelectedVersion != o.SelectedVersion ||
		v.RequestBody != o.RequestBody ||
		v.RequestInProgress != o.RequestInProgress {
		return false
	}
	if len(v.Headers) != len(o.Headers) {
		return false
	}
	for i := range v.Headers {
		if v.Headers[i] != o.Headers[i] {
			return false
		}
	}
	return true
}

// GraphNodeLink is one path segment of a parsed endpoint URL.
type GraphNodeLink struct {
	Name string
}

type Endpoint struct {
	Method      string
	Path        string
	Summary     string
	OperationID string
}
