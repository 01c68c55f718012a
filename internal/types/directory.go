package types

type (
	// DirectoryListing contains the entry names of a single directory.
	DirectoryListing struct {
		Dir     string   `json:"dir"`
		Entries []string `json:"entries"`
	}

	// FilterConfig contains configuration for the entry filter.
	FilterConfig struct {
		Suffix          string   `json:"suffix"`
		ExcludePatterns []string `json:"excludePatterns,omitempty"`
	}
)
