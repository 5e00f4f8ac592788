package module

import (
	"os"
	"strings"
	"time"

	"engagegov/internal/adapters/govdata/camara"
	"engagegov/internal/adapters/govdata/senado"
	"engagegov/internal/core/records"
	"engagegov/internal/core/version"
	"engagegov/internal/platform/cache"
	"engagegov/internal/platform/config"
	perr "engagegov/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

// SourceOptions tunes the upstream client of one source
type SourceOptions struct {
	BaseURL       string        `yaml:"base_url"`
	RatePerSecond float64       `yaml:"rate"`
	Burst         int           `yaml:"burst"`
	Timeout       time.Duration `yaml:"timeout"`
	Attempts      int           `yaml:"attempts"`
	UserAgent     string        `yaml:"user_agent"`
	Disabled      bool          `yaml:"disabled"`
}

// Options holds configuration for the govdata module
type Options struct {
	Default      string                   `yaml:"default"`
	Sources      map[string]SourceOptions `yaml:"sources"`
	CacheBackend string                   `yaml:"cache_backend"`
	CachePrefix  string                   `yaml:"cache_prefix"`
	CacheTTL     time.Duration            `yaml:"cache_ttl"`
	EmptyTTL     time.Duration            `yaml:"empty_ttl"`
	DefaultLimit int                      `yaml:"default_limit"`
	MaxLimit     int                      `yaml:"max_limit"`
	LoadTimeout  time.Duration            `yaml:"load_timeout"`
}

// Defaults are the built in values before the sources file and env apply
func Defaults() Options {
	src := func(base string) SourceOptions {
		return SourceOptions{
			BaseURL:       base,
			RatePerSecond: 5,
			Burst:         10,
			Timeout:       10 * time.Second,
			Attempts:      3,
			UserAgent:     version.UserAgent(),
		}
	}
	return Options{
		Default: string(records.SourceCamara),
		Sources: map[string]SourceOptions{
			string(records.SourceCamara): src(camara.DefaultBaseURL),
			string(records.SourceSenado): src(senado.DefaultBaseURL),
		},
		CacheBackend: cache.BackendMemory,
		CachePrefix:  "engagegov:",
		CacheTTL:     5 * time.Minute,
		EmptyTTL:     30 * time.Second,
		DefaultLimit: 20,
		MaxLimit:     100,
		LoadTimeout:  time.Minute,
	}
}

// FromConfig layers GOV_SOURCES_FILE and then GOV_ env over Defaults
func FromConfig(cfg config.Conf) (Options, error) {
	gc := cfg.Prefix("GOV_")
	o := Defaults()

	if path := gc.MayString("SOURCES_FILE", ""); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Options{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read sources file %s", path)
		}
		if err := o.merge(b); err != nil {
			return Options{}, err
		}
	}

	o.Default = strings.ToLower(gc.MayString("DEFAULT_SOURCE", o.Default))
	o.CacheBackend = gc.MayEnum("CACHE_BACKEND", o.CacheBackend, cache.BackendMemory, cache.BackendRedis, cache.BackendNone)
	o.CachePrefix = gc.MayString("CACHE_PREFIX", o.CachePrefix)
	o.CacheTTL = gc.MayDuration("CACHE_TTL", o.CacheTTL)
	o.EmptyTTL = gc.MayDuration("CACHE_EMPTY_TTL", o.EmptyTTL)
	o.DefaultLimit = gc.MayInt("DEFAULT_LIMIT", o.DefaultLimit)
	o.MaxLimit = gc.MayInt("MAX_LIMIT", o.MaxLimit)
	o.LoadTimeout = gc.MayDuration("LOAD_TIMEOUT", o.LoadTimeout)

	for _, d := range []struct {
		key string
		val time.Duration
	}{
		{"GOV_CACHE_TTL", o.CacheTTL},
		{"GOV_CACHE_EMPTY_TTL", o.EmptyTTL},
		{"GOV_LOAD_TIMEOUT", o.LoadTimeout},
	} {
		if d.val <= 0 {
			return Options{}, perr.WithField(perr.InvalidArgf("%s must be positive, got %s", d.key, d.val), d.key)
		}
	}

	for name, s := range o.Sources {
		sc := gc.Prefix(strings.ToUpper(name) + "_")
		s.BaseURL = sc.MayURL("BASE_URL", s.BaseURL)
		s.RatePerSecond = sc.MayFloat64("RATE", s.RatePerSecond)
		s.Burst = sc.MayInt("BURST", s.Burst)
		s.Timeout = sc.MayDuration("TIMEOUT", s.Timeout)
		s.Attempts = sc.MayInt("ATTEMPTS", s.Attempts)
		s.UserAgent = sc.MayString("USER_AGENT", s.UserAgent)
		s.Disabled = sc.MayBool("DISABLED", s.Disabled)
		o.Sources[name] = s
	}
	return o, nil
}

// merge overlays a YAML document; zero fields in the file keep the current value
func (o *Options) merge(b []byte) error {
	var f Options
	if err := yaml.Unmarshal(b, &f); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "parse sources file")
	}
	if f.Default != "" {
		o.Default = f.Default
	}
	if f.CacheBackend != "" {
		o.CacheBackend = f.CacheBackend
	}
	if f.CachePrefix != "" {
		o.CachePrefix = f.CachePrefix
	}
	if f.CacheTTL > 0 {
		o.CacheTTL = f.CacheTTL
	}
	if f.EmptyTTL > 0 {
		o.EmptyTTL = f.EmptyTTL
	}
	if f.DefaultLimit > 0 {
		o.DefaultLimit = f.DefaultLimit
	}
	if f.MaxLimit > 0 {
		o.MaxLimit = f.MaxLimit
	}
	if f.LoadTimeout > 0 {
		o.LoadTimeout = f.LoadTimeout
	}
	for name, fs := range f.Sources {
		name = strings.ToLower(name)
		s, ok := o.Sources[name]
		if !ok {
			return perr.WithField(perr.InvalidArgf("sources file names unknown source %q", name), "sources")
		}
		if fs.BaseURL != "" {
			s.BaseURL = fs.BaseURL
		}
		if fs.RatePerSecond > 0 {
			s.RatePerSecond = fs.RatePerSecond
		}
		if fs.Burst > 0 {
			s.Burst = fs.Burst
		}
		if fs.Timeout > 0 {
			s.Timeout = fs.Timeout
		}
		if fs.Attempts > 0 {
			s.Attempts = fs.Attempts
		}
		if fs.UserAgent != "" {
			s.UserAgent = fs.UserAgent
		}
		s.Disabled = s.Disabled || fs.Disabled
		o.Sources[name] = s
	}
	return nil
}
