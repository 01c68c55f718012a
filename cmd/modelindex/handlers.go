package main

import (
	"context"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taigrr/modelindex/internal/config"
	"github.com/taigrr/modelindex/internal/types"
)

// toolConfig applies non-empty tool arguments on top of the server config.
func toolConfig(inputDir, suffix, outputFile, format string) (types.Config, error) {
	cfg := baseConfig
	cfg.Exclude = slices.Clone(baseConfig.Exclude)

	if v := strings.TrimSpace(inputDir); v != "" {
		cfg.InputDir = v
	}
	if suffix != "" {
		cfg.Suffix = suffix
	}
	if v := strings.TrimSpace(outputFile); v != "" {
		cfg.OutputFile = v
	}
	if v := strings.TrimSpace(format); v != "" {
		cfg.Format = types.Format(v)
	}

	if err := config.Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

func handleGenerate(ctx context.Context, req *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, GenerateOutput, error) {
	cfg, err := toolConfig(input.InputDir, input.Suffix, input.OutputFile, input.Format)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, GenerateOutput{Success: false}, err
	}

	result, err := generator.Generate(ctx, cfg)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, GenerateOutput{Success: false}, err
	}

	return nil, GenerateOutput{
		Success:    true,
		OutputFile: result.OutputFile,
		Files:      result.Files,
		Count:      result.Count,
	}, nil
}

func handleListModels(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
	cfg, err := toolConfig(input.InputDir, input.Suffix, "", "")
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ListOutput{}, err
	}

	names, err := generator.Build(ctx, cfg)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ListOutput{}, err
	}

	return nil, ListOutput{Files: names, Count: len(names)}, nil
}
