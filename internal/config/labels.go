package config

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	"github.com/agentstation/labelsync/internal/cache"
	"github.com/agentstation/labelsync/internal/transport"
	"github.com/agentstation/labelsync/pkg/constants"
	"github.com/agentstation/labelsync/pkg/differ"
	"github.com/agentstation/labelsync/pkg/errors"
	"github.com/agentstation/labelsync/pkg/labels"
	"github.com/agentstation/labelsync/pkg/logging"
)

// Format is the encoding of a label document.
type Format string

// Supported label document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var yamlSuffix = regexp.MustCompile(`(?i)ya?ml$`)

// FormatOf infers the document format from a path or URL. Sources ending
// in "yml" or "yaml" are YAML, everything else is JSON.
func FormatOf(source string) Format {
	name := source
	if IsRemote(source) {
		if u, err := url.Parse(source); err == nil {
			name = u.Path
		}
	}
	if yamlSuffix.MatchString(name) {
		return FormatYAML
	}
	return FormatJSON
}

// IsRemote reports whether source is an http or https URL.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Fetcher downloads remote documents.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Loader reads label documents from local files and URLs. Downloaded
// documents are cached, so loading the same URL for many repositories
// fetches it once.
type Loader struct {
	fetcher Fetcher
	cache   *cache.Cache[[]labels.ConfiguredLabel]
	baseDir string
	logger  *zerolog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFetcher sets the client used for remote documents.
func WithFetcher(f Fetcher) LoaderOption {
	return func(l *Loader) {
		if f != nil {
			l.fetcher = f
		}
	}
}

// WithBaseDir sets the directory relative paths are resolved against.
// It defaults to the working directory.
func WithBaseDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.baseDir = dir
	}
}

// WithLoaderLogger sets the logger document loads are reported to.
func WithLoaderLogger(logger *zerolog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		cache:  cache.New[[]labels.ConfiguredLabel](constants.CacheTTL, constants.CacheCleanupInterval),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.fetcher == nil {
		l.fetcher = transport.New(&transport.NoAuth{}, "", transport.WithLogger(l.logger))
	}
	return l
}

// Load reads every source in order and merges the results. With no sources
// it reads labels.json from the base directory.
func (l *Loader) Load(ctx context.Context, sources ...string) ([]labels.ConfiguredLabel, error) {
	if len(sources) == 0 {
		sources = []string{constants.DefaultLabelsFile}
	}

	docs := make([][]labels.ConfiguredLabel, 0, len(sources))
	for _, source := range sources {
		doc, err := l.LoadSource(ctx, source)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return Merge(docs...)
}

// LoadSource reads and decodes a single document.
func (l *Loader) LoadSource(ctx context.Context, source string) ([]labels.ConfiguredLabel, error) {
	if IsRemote(source) {
		return l.loadRemote(ctx, source)
	}

	path := l.resolve(source)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ConfigError{
			Component: "labels",
			Message:   "no labels were found in " + path,
			Err:       errors.WrapIO("read", path, err),
		}
	}

	doc, err := Decode(data, FormatOf(path), path)
	if err != nil {
		return nil, err
	}
	l.logger.Debug().Str("source", path).Int("labels", len(doc)).Msg("loaded label document")
	return doc, nil
}

// loadRemote returns deep copies of the cached document, so callers may
// edit what they receive.
func (l *Loader) loadRemote(ctx context.Context, source string) ([]labels.ConfiguredLabel, error) {
	if doc, ok := l.cache.Get(source); ok {
		l.logger.Debug().Str("source", source).Bool("cached", true).Msg("loaded label document")
		return labels.CloneAll(doc), nil
	}

	data, err := l.fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, &errors.ConfigError{
			Component: "labels",
			Message:   "downloading labels from " + source + " failed",
			Err:       err,
		}
	}

	doc, err := Decode(data, FormatOf(source), source)
	if err != nil {
		return nil, err
	}
	l.cache.Set(source, doc)
	l.logger.Debug().Str("source", source).Int("labels", len(doc)).Msg("loaded label document")
	return labels.CloneAll(doc), nil
}

// resolve expands a leading "~/" and makes relative paths absolute against
// the base directory.
func (l *Loader) resolve(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	base := l.baseDir
	if base == "" {
		if wd, err := os.Getwd(); err == nil {
			base = wd
		}
	}
	return filepath.Join(base, path)
}

// Decode parses a label document. Unknown fields are rejected and colors
// lose any leading '#'. An empty document decodes to no labels.
func Decode(data []byte, format Format, source string) ([]labels.ConfiguredLabel, error) {
	var doc []labels.ConfiguredLabel
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}

	switch format {
	case FormatYAML:
		if err := yaml.UnmarshalWithOptions(data, &doc, yaml.DisallowUnknownField()); err != nil {
			return nil, errors.WrapParse(string(FormatYAML), source, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.WrapParse(string(FormatJSON), source, err)
		}
	}

	for i := range doc {
		doc[i].Color = labels.NormalizeColor(doc[i].Color)
	}
	return doc, nil
}

// Merge concatenates documents in order. A label repeated with identical
// content is kept once; repeats that disagree are reported together as a
// configuration error.
func Merge(docs ...[]labels.ConfiguredLabel) ([]labels.ConfiguredLabel, error) {
	var all []labels.ConfiguredLabel
	for _, doc := range docs {
		all = append(all, doc...)
	}
	merged, err := differ.Dedupe(all)
	if err != nil {
		return nil, err
	}
	return merged, nil
}
