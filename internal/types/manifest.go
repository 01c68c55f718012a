// Package types defines the data structures shared by the manifest generator,
// the CLI and the MCP tools.
package types

// Format selects how manifest items are rendered.
type Format string

const (
	// FormatNames renders the manifest as an array of bare filenames.
	FormatNames Format = "names"
	// FormatEntries renders each filename as a {file, displayName} object.
	FormatEntries Format = "entries"
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f == FormatNames || f == FormatEntries
}

type (
	// Config describes a single manifest generation run.
	Config struct {
		InputDir   string   `yaml:"inputDir" json:"inputDir"`
		Suffix     string   `yaml:"suffix" json:"suffix"`
		OutputFile string   `yaml:"outputFile" json:"outputFile"`
		Sort       bool     `yaml:"sort" json:"sort"`
		Format     Format   `yaml:"format" json:"format"`
		Exclude    []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	}

	// ManifestEntry is one item of an "entries" manifest.
	ManifestEntry struct {
		File        string `json:"file"`
		DisplayName string `json:"displayName"`
	}

	// Result describes a completed generation run.
	Result struct {
		OutputFile string   `json:"outputFile"`
		Files      []string `json:"files"`
		Count      int      `json:"count"`
	}
)
