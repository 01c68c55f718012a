package main

import "github.com/modelcontextprotocol/go-sdk/mcp"

type (
	// GenerateInput contains parameters for writing a manifest.
	GenerateInput struct {
		InputDir   string `json:"inputDir,omitempty" jsonschema:"Directory to scan, relative to the server root (default: configured inputDir)"`
		Suffix     string `json:"suffix,omitempty" jsonschema:"Keep entries whose name ends with this suffix (default: configured suffix)"`
		OutputFile string `json:"outputFile,omitempty" jsonschema:"Manifest file to write, relative to the server root (default: configured outputFile)"`
		Format     string `json:"format,omitempty" jsonschema:"Manifest format: names or entries (default: configured format)"`
	}

	// GenerateOutput contains the result of writing a manifest.
	GenerateOutput struct {
		Success    bool     `json:"success"`
		OutputFile string   `json:"outputFile"`
		Files      []string `json:"files"`
		Count      int      `json:"count"`
	}

	// ListInput contains parameters for listing model files.
	ListInput struct {
		InputDir string `json:"inputDir,omitempty" jsonschema:"Directory to scan, relative to the server root (default: configured inputDir)"`
		Suffix   string `json:"suffix,omitempty" jsonschema:"Keep entries whose name ends with this suffix (default: configured suffix)"`
	}

	// ListOutput contains the model files of a directory.
	ListOutput struct {
		Files []string `json:"files"`
		Count int      `json:"count"`
	}
)

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_manifest",
		Description: "Write the JSON manifest of model files in a directory. The listing is not recursive and the output file is fully replaced. Returns the files written.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_models",
		Description: "List the model files a manifest would contain, without writing anything.",
	}, handleListModels)
}
