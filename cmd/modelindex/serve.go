package main

import (
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/taigrr/modelindex/internal/filesystem"
	"github.com/taigrr/modelindex/internal/manifest"
	"github.com/taigrr/modelindex/internal/types"
)

var (
	generator  *manifest.Generator
	baseConfig types.Config
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [root]",
		Short: "Serve manifest tools over MCP on stdio",
		Long: `serve runs a Model Context Protocol server on stdio exposing the
generate_manifest and list_models tools. Every path a tool receives is
resolved inside root, which defaults to the current directory.`,
		Example: `modelindex serve ~/site`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, args, opts)
		},
	}
}

func runServer(cmd *cobra.Command, args []string, opts *options) error {
	var root string
	if len(args) > 0 {
		root = args[0]
	} else {
		var err error
		root, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	cfg, err := resolveConfig(cmd, opts, root, nil)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
	fileSystem := filesystem.New(root)
	generator = manifest.New(fileSystem, logger)
	baseConfig = cfg

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "modelindex",
		Version: version,
	}, nil)

	registerTools(server)

	logger.Info("serving MCP on stdio", "root", fileSystem.Root())
	if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("error running server: %w", err)
	}

	return nil
}
