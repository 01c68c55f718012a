// Package main implements the modelindex command, which writes a JSON
// manifest of the model files in a directory.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/taigrr/modelindex/internal/config"
	"github.com/taigrr/modelindex/internal/filesystem"
	"github.com/taigrr/modelindex/internal/manifest"
	"github.com/taigrr/modelindex/internal/types"
)

type options struct {
	configPath string
	suffix     string
	output     string
	format     string
	exclude    []string
	noSort     bool
	dryRun     bool
	verbose    bool
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "modelindex [input-dir]",
		Short: "Write a JSON manifest of the model files in a directory",
		Long: `modelindex lists the entries of a directory whose names end with a
suffix (.glb by default) and writes them as a JSON array, so a viewer
can discover which models to load. The listing is not recursive and the
output file is fully replaced on every run.`,
		Example: `modelindex
modelindex ./models -o public/models.json
modelindex scans --suffix .gltf --format entries --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, opts)
		},
	}

	addConfigFlags(cmd.PersistentFlags(), opts)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the manifest to stdout instead of writing it")

	cmd.AddCommand(newServeCmd(opts))

	return cmd
}

func addConfigFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default: "+config.DefaultFileName+" when present)")
	flags.StringVarP(&opts.suffix, "suffix", "s", config.DefaultSuffix, "keep entries whose name ends with this suffix")
	flags.StringVarP(&opts.output, "output", "o", config.DefaultOutputFile, "manifest file to write")
	flags.StringVar(&opts.format, "format", string(types.FormatNames), "manifest format: names or entries")
	flags.StringArrayVar(&opts.exclude, "exclude", nil, "glob of entry names to leave out (repeatable)")
	flags.BoolVar(&opts.noSort, "no-sort", false, "keep directory listing order instead of sorting names")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
}

// resolveConfig merges defaults, the config file and explicitly set flags.
// The config file is discovered in discoverDir unless --config is given.
func resolveConfig(cmd *cobra.Command, opts *options, discoverDir string, args []string) (types.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.Discover(discoverDir)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return types.Config{}, err
	}

	if len(args) > 0 {
		cfg.InputDir = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("suffix") {
		cfg.Suffix = opts.suffix
	}
	if flags.Changed("output") {
		cfg.OutputFile = opts.output
	}
	if flags.Changed("format") {
		cfg.Format = types.Format(opts.format)
	}
	if flags.Changed("exclude") {
		cfg.Exclude = opts.exclude
	}
	if flags.Changed("no-sort") {
		cfg.Sort = !opts.noSort
	}

	if err := config.Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string, opts *options) error {
	cfg, err := resolveConfig(cmd, opts, ".", args)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
	gen := manifest.New(filesystem.New(""), logger)

	if opts.dryRun {
		names, err := gen.Build(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to build manifest: %w", err)
		}
		data, err := manifest.Encode(names, cfg.Format, cfg.Suffix)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(data)); err != nil {
			return fmt.Errorf("failed to print manifest: %w", err)
		}
		return nil
	}

	result, err := gen.Generate(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to generate manifest: %w", err)
	}

	logger.Info("manifest written", "output", result.OutputFile, "models", result.Count)
	return nil
}
