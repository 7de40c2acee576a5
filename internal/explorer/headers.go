package explorer

import (
	"strings"

	"graphex/internal/model"
)

// DefaultContentType is prepended when switching to a method with a body.
var DefaultContentType = model.Header{
	Name:    "Content-type",
	Value:   "application/json",
	Enabled: true,
}

// MethodNeedsBody reports whether m carries a request body.
func MethodNeedsBody(m model.Method) bool {
	switch m {
	case model.MethodPost, model.MethodPut, model.MethodPatch:
		return true
	default:
		return false
	}
}

// HasHeader reports whether a header named name exists, ignoring case.
func HasHeader(headers []model.Header, name string) bool {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return true
		}
	}
	return false
}

// WithContentTypeHeader adds DefaultContentType to cur when the method has
// just changed to POST, PUT or PATCH and no content-type header exists yet.
func WithContentTypeHeader(prev, cur model.ExplorerValues) model.ExplorerValues {
	if prev.SelectedOption == cur.SelectedOption || !MethodNeedsBody(cur.SelectedOption) {
		return cur
	}
	if HasHeader(cur.Headers, "content-type") {
		return cur
	}

	headers := make([]model.Header, 0, len(cur.Headers)+1)
	headers = append(headers, DefaultContentType)
	headers = append(headers, cur.Headers...)
	cur.Headers = headers
	return cur
}
