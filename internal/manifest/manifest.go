// Package manifest generates the JSON file listing the model files of a
// directory.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/taigrr/modelindex/internal/filesystem"
	"github.com/taigrr/modelindex/internal/pathfilter"
	"github.com/taigrr/modelindex/internal/types"
)

// Indent is the indentation used for every manifest.
const Indent = "  "

// Generator builds and writes manifests.
type Generator struct {
	fileSystem *filesystem.Service
	logger     *log.Logger
}

// New creates a new Generator. Nil arguments get an unconfined filesystem
// and a discarding logger.
func New(fsys *filesystem.Service, logger *log.Logger) *Generator {
	if fsys == nil {
		fsys = filesystem.New("")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{
		fileSystem: fsys,
		logger:     logger,
	}
}

// Build lists cfg.InputDir and returns the matching entry names without
// writing anything.
func (g *Generator) Build(ctx context.Context, cfg types.Config) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	listing, err := g.fileSystem.ListEntries(cfg.InputDir)
	if err != nil {
		return nil, err
	}

	filter := pathfilter.New(&types.FilterConfig{
		Suffix:          cfg.Suffix,
		ExcludePatterns: cfg.Exclude,
	})
	names := filter.FilterNames(listing.Entries)
	if cfg.Sort {
		sort.Strings(names)
	}

	g.logger.Debug("listed directory",
		"dir", listing.Dir,
		"entries", len(listing.Entries),
		"matched", len(names),
		"suffix", cfg.Suffix,
	)

	return names, nil
}

// Generate builds the manifest for cfg and writes it to cfg.OutputFile,
// replacing any previous content. Nothing is written if listing fails.
func (g *Generator) Generate(ctx context.Context, cfg types.Config) (types.Result, error) {
	names, err := g.Build(ctx, cfg)
	if err != nil {
		return types.Result{}, err
	}

	data, err := Encode(names, cfg.Format, cfg.Suffix)
	if err != nil {
		return types.Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return types.Result{}, err
	}

	written, err := g.fileSystem.WriteFile(cfg.OutputFile, data)
	if err != nil {
		return types.Result{}, err
	}

	g.logger.Debug("wrote manifest", "output", written, "bytes", len(data))

	return types.Result{
		OutputFile: written,
		Files:      names,
		Count:      len(names),
	}, nil
}

// Encode serializes names as a 2-space indented JSON array with no trailing
// newline. An empty format means FormatNames.
func Encode(names []string, format types.Format, suffix string) ([]byte, error) {
	if names == nil {
		names = []string{}
	}

	var v any
	switch format {
	case types.FormatNames, "":
		v = names
	case types.FormatEntries:
		entries := make([]types.ManifestEntry, 0, len(names))
		for _, name := range names {
			entries = append(entries, types.ManifestEntry{
				File:        name,
				DisplayName: DisplayName(name, suffix),
			})
		}
		v = entries
	default:
		return nil, fmt.Errorf("unknown manifest format: %q", format)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DisplayName is the label a viewer shows for a model file: the name with
// the suffix removed, or with its extension removed when suffix is empty.
func DisplayName(name, suffix string) string {
	if suffix == "" {
		suffix = filepath.Ext(name)
	}
	display := strings.TrimSuffix(name, suffix)
	if display == "" {
		return name
	}
	return display
}
