package openapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"graphex/internal/model"
)

const defaultTimeout = 30 * time.Second

// IsRemote reports whether location is fetched over http(s) rather than read
// from disk.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Load reads and validates the OpenAPI document at location, which is either
// an http(s) URL or a file path. A leading "@" on a path is ignored.
func Load(ctx context.Context, location string) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	loader.IsExternalRefsAllowed = true

	var (
		doc *openapi3.T
		err error
	)
	if IsRemote(location) {
		doc, err = loadRemote(ctx, loader, location)
	} else {
		doc, err = loader.LoadFromFile(strings.TrimPrefix(location, "@"))
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", location, err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate %s: %w", location, err)
	}
	return doc, nil
}

func loadRemote(ctx context.Context, loader *openapi3.Loader, location string) (*openapi3.T, error) {
	client := &http.Client{Timeout: defaultTimeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s: %s", location, resp.Status)
	}
	return loader.LoadFromIoReader(resp.Body)
}

// ExtractEndpoints lists every operation of doc, ordered by path and then by
// the method selector order.
func ExtractEndpoints(doc *openapi3.T) []model.Endpoint {
	var out []model.Endpoint
	if doc == nil || doc.Paths == nil {
		return out
	}

	items := doc.Paths.Map()
	paths := make([]string, 0, len(items))
	for p := range items {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		item := items[path]
		if item == nil {
			continue
		}

		addOp := func(method model.Method, op *openapi3.Operation) {
			if op == nil {
				return
			}
			out = append(out, model.Endpoint{
				Method:      string(method),
				Path:        path,
				Summary:     strings.TrimSpace(op.Summary),
				OperationID: strings.TrimSpace(op.OperationID),
			})
		}

		addOp(model.MethodGet, item.Get)
		addOp(model.MethodPost, item.Post)
		addOp(model.MethodPut, item.Put)
		addOp(model.MethodPatch, item.Patch)
		addOp(model.MethodDelete, item.Delete)
	}

	return out
}
