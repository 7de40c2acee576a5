package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"graphex/internal/model"
)

var ErrRelativeURL = errors.New("endpoint url must be absolute")

// RequestIDHeader carries a fresh correlation id on every request.
const RequestIDHeader = "client-request-id"

type Result struct {
	StatusCode int
	Status     string
	Elapsed    time.Duration
	Headers    map[string]string
	Body       string
}

type RequestSpec struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

const defaultTimeout = 30 * time.Second

// BuildRequest turns the explorer state into a request. Disabled headers and
// headers without a name are skipped. A bearer token is attached unless an
// Authorization header is already set.
func BuildRequest(v model.ExplorerValues, token string) (RequestSpec, error) {
	raw := strings.TrimSpace(v.EndpointURL)
	u, err := url.Parse(raw)
	if err != nil {
		return RequestSpec{}, fmt.Errorf("parse endpoint url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return RequestSpec{}, fmt.Errorf("%w: %q", ErrRelativeURL, raw)
	}

	method := v.SelectedOption
	if method == "" {
		method = model.MethodGet
	}

	headers := map[string]string{
		RequestIDHeader: uuid.NewString(),
	}
	for _, h := range v.Headers {
		name := strings.TrimSpace(h.Name)
		if !h.Enabled || name == "" {
			continue
		}
		headers[name] = h.Value
	}
	if token = strings.TrimSpace(token); token != "" && !hasHeader(headers, "Authorization") {
		headers["Authorization"] = "Bearer " + token
	}

	var body []byte
	if shouldSendBody(method) {
		if b := strings.TrimSpace(v.RequestBody); b != "" {
			var check any
			if err := json.Unmarshal([]byte(b), &check); err != nil {
				return RequestSpec{}, fmt.Errorf("invalid json body: %w", err)
			}
			body = []byte(b)
		}
	}

	return RequestSpec{Method: string(method), URL: u.String(), Headers: headers, Body: body}, nil
}

func Execute(ctx context.Context, reqSpec RequestSpec) (Result, error) {
	client := &http.Client{Timeout: defaultTimeout}
	var body io.Reader
	if len(reqSpec.Body) > 0 {
		body = bytes.NewReader(reqSpec.Body)
	}

	req, err := http.NewRequestWithContext(ctx, reqSpec.Method, reqSpec.URL, body)
	if err != nil {
		return Result{}, err
	}
	for k, v := range reqSpec.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response body: %w", err)
	}

	headers := make(map[string]string, len(resp.Header))
	for k, vals := range resp.Header {
		headers[strings.ToLower(k)] = strings.Join(vals, ", ")
	}

	return Result{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Elapsed:    elapsed,
		Headers:    headers,
		Body:       formatBody(resp.Header.Get("Content-Type"), b),
	}, nil
}

// Runner executes explorer queries and reports each outcome to Done.
type Runner struct {
	Token  string
	Logger *slog.Logger
	Done   func(RequestSpec, Result, error)
}

func (r *Runner) ExecuteExplorerQuery(ctx context.Context, v model.ExplorerValues) {
	spec, err := BuildRequest(v, r.Token)
	if err != nil {
		r.finish(spec, Result{}, err)
		return
	}
	res, err := Execute(ctx, spec)
	r.finish(spec, res, err)
}

func (r *Runner) finish(spec RequestSpec, res Result, err error) {
	if r.Logger != nil {
		if err != nil {
			r.Logger.Warn("query failed", slog.String("url", spec.URL), slog.Any("error", err))
		} else {
			r.Logger.Info("query done",
				slog.String("method", spec.Method),
				slog.String("url", spec.URL),
				slog.Int("status", res.StatusCode),
				slog.Duration("elapsed", res.Elapsed),
				slog.String("request_id", spec.Headers[RequestIDHeader]))
		}
	}
	if r.Done != nil {
		r.Done(spec, res, err)
	}
}

func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

func shouldSendBody(m model.Method) bool {
	switch m {
	case model.MethodPost, model.MethodPut, model.MethodPatch, model.MethodDelete:
		return true
	default:
		return false
	}
}

func formatBody(contentType string, body []byte) string {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "application/json") {
		var v any
		if err := json.Unmarshal(body, &v); err == nil {
			return colorizeJSON(v, 0)
		}
	}
	return string(body)
}

// ansi color codes
const (
	colorReset   = "\033[0m"
	colorKey     = "\033[36m"
	colorString  = "\033[32m"
	colorNumber  = "\033[33m"
	colorBool    = "\033[35m"
	colorNull    = "\033[90m"
	colorBracket = "\033[37m"
)

func colorizeJSON(v any, indent int) string {
	prefix := strings.Repeat("  ", indent)

	switch val := v.(type) {
	case nil:
		return colorNull + "null" + colorReset
	case bool:
		return colorBool + fmt.Sprintf("%v", val) + colorReset
	case float64:
		if val == float64(int64(val)) {
			return colorNumber + fmt.Sprintf("%.0f", val) + colorReset
		}
		return colorNumber + fmt.Sprintf("%v", val) + colorReset
	case string:
		return colorString + `"` + escapeJSON(val) + `"` + colorReset
	case []any:
		if len(val) == 0 {
			return colorBracket + "[]" + colorReset
		}
		var sb strings.Builder
		sb.WriteString(colorBracket + "[" + colorReset + "\n")
		for i, item := range val {
			sb.WriteString(prefix + "  " + colorizeJSON(item, indent+1))
			if i < len(val)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(prefix + colorBracket + "]" + colorReset)
		return sb.String()
	case map[string]any:
		if len(val) == 0 {
			return colorBracket + "{}" + colorReset
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		// stable key order
		sort.Strings(keys)

		var sb strings.Builder
		sb.WriteString(colorBracket + "{" + colorReset + "\n")
		for i, k := range keys {
			sb.WriteString(prefix + "  " + colorKey + `"` + escapeJSON(k) + `"` + colorReset + ": ")
			sb.WriteString(colorizeJSON(val[k], indent+1))
			if i < len(keys)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(prefix + colorBracket + "}" + colorReset)
		return sb.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func escapeJSON(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}
