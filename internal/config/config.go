package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"graphex/internal/model"
)

// Config holds application-wide configuration.
type Config struct {
	// BaseURL is the service root that precedes the version segment.
	BaseURL string

	// Versions are the selector entries, in display order.
	Versions []string

	// Specs maps a version to the OpenAPI document (URL or file) describing it.
	Specs map[string]string

	// Token is sent as a bearer token and unlocks the method selector.
	Token string

	Debug   bool
	LogFile string
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:  model.DefaultGraphURL,
		Versions: append([]string(nil), model.DefaultVersions...),
		Specs:    map[string]string{},
	}
}

// FromEnv overlays GRAPHEX_* environment variables on the defaults.
// Malformed GRAPHEX_SPECS entries are reported; the valid ones are still
// applied.
func FromEnv() (*Config, error) {
	cfg := DefaultConfig()
	var errs []error

	if v := strings.TrimSpace(os.Getenv("GRAPHEX_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("GRAPHEX_VERSIONS"); v != "" {
		cfg.Versions = splitList(v)
	}
	if v := os.Getenv("GRAPHEX_SPECS"); v != "" {
		for _, pair := range splitList(v) {
			if err := (*specsFlag)(&cfg.Specs).Set(pair); err != nil {
				errs = append(errs, fmt.Errorf("GRAPHEX_SPECS: %w", err))
			}
		}
	}
	cfg.Token = strings.TrimSpace(os.Getenv("GRAPHEX_TOKEN"))
	if v := os.Getenv("GRAPHEX_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = debug
		}
	}
	cfg.LogFile = strings.TrimSpace(os.Getenv("GRAPHEX_LOG_FILE"))

	return cfg, errors.Join(errs...)
}

// BindFlags registers command line flags that override cfg when parsed.
func (cfg *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Service root preceding the version segment")
	fs.Func("versions", "Comma separated version selector entries", func(s string) error {
		cfg.Versions = splitList(s)
		return nil
	})
	fs.Var((*specsFlag)(&cfg.Specs), "spec", "OpenAPI document for a version as version=url-or-file (repeatable)")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "Bearer token sent with requests")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file path (default: platform log directory)")
}

// Normalize trims the base URL and makes sure the version selector has an
// Other slot.
func (cfg *Config) Normalize() error {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return fmt.Errorf("base url required")
	}
	if len(cfg.Versions) == 0 {
		cfg.Versions = append([]string(nil), model.DefaultVersions...)
	}
	hasOther := false
	for _, v := range cfg.Versions {
		if v == model.VersionOther {
			hasOther = true
		}
	}
	if !hasOther {
		cfg.Versions = append(cfg.Versions, model.VersionOther)
	}
	return nil
}

// DefaultVersion is the first selector entry that names a real version.
func (cfg *Config) DefaultVersion() string {
	for _, v := range cfg.Versions {
		if v != model.VersionOther {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type specsFlag map[string]string

func (f *specsFlag) String() string {
	if f == nil || *f == nil {
		return ""
	}
	keys := make([]string, 0, len(*f))
	for k := range *f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + (*f)[k]
	}
	return strings.Join(parts, ",")
}

func (f *specsFlag) Set(s string) error {
	version, location, ok := strings.Cut(s, "=")
	version, location = strings.TrimSpace(version), strings.TrimSpace(location)
	if !ok || version == "" || location == "" {
		return fmt.Errorf("expected version=location, got %q", s)
	}
	if *f == nil {
		*f = map[string]string{}
	}
	(*f)[version] = location
	return nil
}
