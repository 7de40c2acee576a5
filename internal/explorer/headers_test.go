package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"graphex/internal/model"
)

func TestWithContentTypeHeader(t *testing.T) {
	custom := model.Header{Name: "Prefer", Value: "outlook.timezone=\"UTC\"", Enabled: true}

	tests := []struct {
		name    string
		prev    model.Method
		cur     model.Method
		headers []model.Header
		want    []model.Header
	}{
		{"get to post", model.MethodGet, model.MethodPost, nil, []model.Header{DefaultContentType}},
		{"get to put", model.MethodGet, model.MethodPut, nil, []model.Header{DefaultContentType}},
		{"delete to patch", model.MethodDelete, model.MethodPatch, nil, []model.Header{DefaultContentType}},
		{"from nothing", "", model.MethodPost, nil, []model.Header{DefaultContentType}},
		{"post to put is an edge", model.MethodPost, model.MethodPut, nil, []model.Header{DefaultContentType}},
		{"prepends", model.MethodGet, model.MethodPost, []model.Header{custom}, []model.Header{DefaultContentType, custom}},
		{"post to post", model.MethodPost, model.MethodPost, nil, nil},
		{"post to get", model.MethodPost, model.MethodGet, nil, nil},
		{"get to delete", model.MethodGet, model.MethodDelete, nil, nil},
		{
			"existing header any case",
			model.MethodGet, model.MethodPost,
			[]model.Header{{Name: "CONTENT-TYPE", Value: "text/plain", Enabled: true}},
			[]model.Header{{Name: "CONTENT-TYPE", Value: "text/plain", Enabled: true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := model.ExplorerValues{SelectedOption: tt.prev}
			cur := model.ExplorerValues{SelectedOption: tt.cur, Headers: tt.headers}
			got := WithContentTypeHeader(prev, cur)
			assert.Equal(t, tt.want, got.Headers)
		})
	}
}

func TestWithContentTypeHeaderLeavesInputAlone(t *testing.T) {
	headers := make([]model.Header, 1, 4)
	headers[0] = model.Header{Name: "Accept", Value: "application/json", Enabled: true}
	cur := model.ExplorerValues{SelectedOption: model.MethodPost, Headers: headers}

	got := WithContentTypeHeader(model.ExplorerValues{SelectedOption: model.MethodGet}, cur)

	assert.Len(t, got.Headers, 2)
	assert.Equal(t, "Accept", headers[0].Name)
	assert.Equal(t, "Content-type", got.Headers[0].Name)
}

func TestMethodNeedsBody(t *testing.T) {
	for _, m := range model.Methods {
		want := m == model.MethodPost || m == model.MethodPut || m == model.MethodPatch
		assert.Equal(t, want, MethodNeedsBody(m), string(m))
	}
}
